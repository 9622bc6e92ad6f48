// Package types provides type definitions for structured data used throughout the cardforge pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// ContentSource records which path produced a section summary
type ContentSource string

// Content sources
const (
	// SourceModel means the text model produced the lines
	SourceModel ContentSource = "model"
	// SourceFallback means the model failed and the deterministic policy produced the lines
	SourceFallback ContentSource = "fallback"
	// SourceVerbatim means no model was configured and items were passed through
	SourceVerbatim ContentSource = "verbatim"
)

// EllipsisMarker terminates every truncated line
const EllipsisMarker = "…"

// LayoutBudget caps the text the summarizer may hand to the composer
type LayoutBudget struct {
	MaxLinesPerSection int `json:"max_lines_per_section" validate:"gte=1,lte=20"`
	MaxCharsPerLine    int `json:"max_chars_per_line" validate:"gte=8,lte=400"`
}

// DefaultLayoutBudget matches the default 800x600 card
func DefaultLayoutBudget() LayoutBudget {
	return LayoutBudget{
		MaxLinesPerSection: 4,
		MaxCharsPerLine:    90,
	}
}

// Validate validates the budget using the validator.
func (b LayoutBudget) Validate() error {
	return validator.New().Struct(b)
}

// CardContent is the summarized, length-bounded text ready for layout
type CardContent struct {
	Budget   LayoutBudget     `json:"budget"`
	Sections []SectionSummary `json:"sections"`
}

// SectionSummary holds the lines for one section group of the card
type SectionSummary struct {
	Kind        SectionKind   `json:"kind"`
	Heading     string        `json:"heading"`
	Lines       []string      `json:"lines"`
	Source      ContentSource `json:"source"`
	Degradation string        `json:"degradation,omitempty"`
}

// Header returns the text drawn above the section's bullets
func (s SectionSummary) Header() string {
	if s.Kind == KindOther && s.Heading != "" {
		return s.Heading
	}
	return s.Kind.Label()
}

// LineCount returns the total number of summary lines across all sections
func (c *CardContent) LineCount() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Lines)
	}
	return n
}

// Degraded reports whether any section fell back from the model path
func (c *CardContent) Degraded() bool {
	for _, s := range c.Sections {
		if s.Source == SourceFallback {
			return true
		}
	}
	return false
}
