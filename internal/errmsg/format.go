// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Release operations
	OpReleaseLoad   Op = "load release"
	OpReleaseSearch Op = "search releases"
	OpReleaseSave   Op = "remember release"

	// Scrobbling operations
	OpScrobble     Op = "scrobble track"
	OpNowPlaying   Op = "update now playing"
	OpPendingFlush Op = "retry pending scrobbles"
	OpPendingQueue Op = "queue failed scrobble"

	// History operations
	OpHistoryLoad Op = "load play history"
	OpPlayRecord  Op = "record play"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
