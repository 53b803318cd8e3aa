package exporter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kochurovskyi/sqlbot/src/sqlgate"
)

func newTestService(fs afero.Fs) *Service {
	return New(fs, "/exports", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func row(pairs ...any) *sqlgate.Row {
	r := sqlgate.NewRow()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i].(string), pairs[i+1])
	}
	return r
}

func TestGenerateCSVEmptyInput(t *testing.T) {
	svc := newTestService(afero.NewMemMapFs())

	_, err := svc.GenerateCSV(nil, "")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = svc.GenerateCSV([]*sqlgate.Row{}, "out")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestGenerateCSVDefaultFilename(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := newTestService(fs)

	path, err := svc.GenerateCSV([]*sqlgate.Row{row("a", int64(1))}, "")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`app_portfolio_export_\d{8}_\d{6}\.csv$`), path)
	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGenerateCSVAppendsSuffix(t *testing.T) {
	svc := newTestService(afero.NewMemMapFs())

	path, err := svc.GenerateCSV([]*sqlgate.Row{row("a", int64(1))}, "report")
	require.NoError(t, err)
	assert.Equal(t, "/exports/report.csv", path)

	path, err = svc.GenerateCSV([]*sqlgate.Row{row("a", int64(1))}, "report.csv")
	require.NoError(t, err)
	assert.Equal(t, "/exports/report.csv", path)
}

func TestGenerateCSVContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := newTestService(fs)

	rows := []*sqlgate.Row{
		row("id", int64(1), "app_name", "ChessMaster", "installs", int64(1200)),
		row("id", int64(2), "app_name", "FitTrack"), // missing installs
	}

	path, err := svc.GenerateCSV(rows, "apps.csv")
	require.NoError(t, err)

	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "id,app_name,installs\n1,ChessMaster,1200\n2,FitTrack,\n", string(content))
}

func TestCleanup(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := newTestService(fs)

	path, err := svc.GenerateCSV([]*sqlgate.Row{row("a", int64(1))}, "gone.csv")
	require.NoError(t, err)

	svc.Cleanup(path)
	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting again must not panic or error out.
	svc.Cleanup(path)
}

type fakeUploader struct {
	req UploadRequest
	err error
}

func (f *fakeUploader) Upload(ctx context.Context, req UploadRequest) (UploadResult, error) {
	f.req = req
	if f.err != nil {
		return UploadResult{}, f.err
	}
	return UploadResult{FileID: "F123"}, nil
}

func TestGenerateAndUpload(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := newTestService(fs)
	uploader := &fakeUploader{}

	rows := []*sqlgate.Row{row("a", int64(1))}
	result, err := svc.GenerateAndUpload(context.Background(), rows, uploader, "C42", "1234.5678", "out.csv", "")
	require.NoError(t, err)
	assert.Equal(t, "F123", result.FileID)
	assert.Equal(t, "C42", uploader.req.Channel)
	assert.Equal(t, "1234.5678", uploader.req.ThreadTS)
	assert.Contains(t, uploader.req.Title, "App Portfolio Export")

	// The temp file is removed after upload.
	exists, err := afero.Exists(fs, uploader.req.Path)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerateAndUploadCleansUpOnFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := newTestService(fs)
	uploader := &fakeUploader{err: errors.New("channel unavailable")}

	rows := []*sqlgate.Row{row("a", int64(1))}
	_, err := svc.GenerateAndUpload(context.Background(), rows, uploader, "C42", "", "fail.csv", "export")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel unavailable")

	exists, err := afero.Exists(fs, uploader.req.Path)
	require.NoError(t, err)
	assert.False(t, exists)
}
