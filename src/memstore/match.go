package memstore

import "strings"

// sharesLongWord reports whether question contains any word of the
// description longer than three characters. Short words like "the" or
// "all" carry no signal and are skipped.
func sharesLongWord(question, description string) bool {
	for _, word := range strings.Fields(description) {
		if len(word) > 3 && strings.Contains(question, word) {
			return true
		}
	}
	return false
}
