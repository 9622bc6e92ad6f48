// Package types provides type definitions for structured data used throughout the cardforge pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Violation represents a single content constraint failure
type Violation struct {
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	Details   string `json:"details"`
	Section   string `json:"section,omitempty"`
	LineIndex *int   `json:"line_index,omitempty"`
	CharCount *int   `json:"char_count,omitempty"`
	LineText  string `json:"line_text,omitempty"`
}

// Violations represents a collection of constraint failures
type Violations struct {
	Violations []Violation `json:"violations"`
}
