package errors

import stderr "errors"

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

var (
	// NoUUIDInContextError reports that the context carries no session UUID.
	NoUUIDInContextError = New("session UUID is required")
	// EmbeddedNewlineError reports a command containing a newline, which the
	// line-oriented worker protocol cannot carry.
	EmbeddedNewlineError = New("command contains embedded newline")
)
