package txtshot

import "errors"

var (
	// ErrTranscriptNotFound is returned when the input transcript does not exist.
	ErrTranscriptNotFound = errors.New("transcript not found")
	// ErrFontUnavailable is returned when the preferred font cannot be loaded.
	ErrFontUnavailable = errors.New("font unavailable")
)
