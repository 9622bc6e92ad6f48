// Package rendering composes a card image from a profile, its summarized
// content and a photo, and exports composed cards to paginated documents.
package rendering

import "fmt"

// Layout stages reported by LayoutError
const (
	StageSpec  = "spec"
	StagePhoto = "photo"
	StageFonts = "fonts"
)

// LayoutError represents a fatal composition failure: an unusable render
// spec or a photo that cannot be decoded
type LayoutError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *LayoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("layout error: %s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("layout error: %s: %s", e.Stage, e.Message)
}

func (e *LayoutError) Unwrap() error {
	return e.Cause
}

// ExportError represents a paginated export failure. The raster card is
// still valid when export fails.
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
