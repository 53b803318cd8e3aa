package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// StoragePaths holds the default filesystem locations.
type StoragePaths struct {
	DatabasePath string
	ExportDir    string
}

// DefaultStoragePaths resolves default locations: the database under the
// XDG data home, exports under the system temp directory.
func DefaultStoragePaths() StoragePaths {
	return StoragePaths{
		DatabasePath: filepath.Join(xdg.DataHome, "sqlbot", "app_portfolio.db"),
		ExportDir:    filepath.Join(os.TempDir(), "sqlbot-exports"),
	}
}
