// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

const (
	// Clip operations
	OpClipLoad  Op = "load clip"
	OpClipPlay  Op = "play clip"
	OpClipSeek  Op = "seek"
	OpEffectSet Op = "apply effect"

	// Discovery
	OpDiscover Op = "discover audio files"

	// Startup
	OpAudioInit  Op = "open audio device"
	OpInitialize Op = "initialize application"
	OpServe      Op = "serve audio files"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message naming the subject of op.
func FormatWith(op Op, subject string, err error) string {
	if err == nil {
		return ""
	}
	if subject == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, subject, err)
}
