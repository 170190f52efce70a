// Package testutil holds helpers shared by the command-line tests.
package testutil

import "regexp"

// csiSequence matches SGR and other CSI escapes (ESC [ params letter).
var csiSequence = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes returns s without terminal color sequences, so banner and
// summary output can be compared as plain text.
func StripAnsiCodes(s string) string {
	return csiSequence.ReplaceAllString(s, "")
}
