// Package validation checks card content against its layout budget.
package validation

import "fmt"

// ContentError reports a card content file that cannot be checked: it does
// not match the schema, does not decode or records an unusable budget
type ContentError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ContentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("card content %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("card content %s: %s", e.Path, e.Message)
}

func (e *ContentError) Unwrap() error {
	return e.Cause
}

// FileReadError reports a card content file that cannot be read
type FileReadError struct {
	Path  string
	Cause error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("cannot read card content %s: %v", e.Path, e.Cause)
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}
