// Package types provides type definitions for structured data used throughout the cardforge pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// SectionKind classifies a profile section by its heading
type SectionKind int

// Section kinds in canonical card order. Other is the catch-all.
const (
	KindAbout SectionKind = iota
	KindCompetencies
	KindAspirations
	KindAchievements
	KindOther
)

// CanonicalKinds lists the section kinds in the order the card draws them
var CanonicalKinds = []SectionKind{KindAbout, KindCompetencies, KindAspirations, KindAchievements, KindOther}

// String returns the lowercase identifier used in JSON and prompt keys
func (k SectionKind) String() string {
	switch k {
	case KindAbout:
		return "about"
	case KindCompetencies:
		return "competencies"
	case KindAspirations:
		return "aspirations"
	case KindAchievements:
		return "achievements"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Label returns the header drawn on the card for a known kind.
// Other sections are labelled with their own heading instead.
func (k SectionKind) Label() string {
	switch k {
	case KindAbout:
		return "About"
	case KindCompetencies:
		return "Key Competencies"
	case KindAspirations:
		return "Aspirations"
	case KindAchievements:
		return "Achievements"
	case KindOther:
		return "Other"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler
func (k SectionKind) MarshalText() ([]byte, error) {
	if k < KindAbout || k > KindOther {
		return nil, fmt.Errorf("invalid section kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *SectionKind) UnmarshalText(text []byte) error {
	kind, ok := ParseSectionKind(string(text))
	if !ok {
		return fmt.Errorf("unknown section kind %q", string(text))
	}
	*k = kind
	return nil
}

// ParseSectionKind maps an identifier produced by String back to its kind
func ParseSectionKind(s string) (SectionKind, bool) {
	for _, k := range CanonicalKinds {
		if strings.EqualFold(s, k.String()) {
			return k, true
		}
	}
	return KindOther, false
}

// Profile is the parsed representation of a profile document
type Profile struct {
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Section is one level-2 block of a profile document.
// When Narrative is set, Items[0] holds the section's joined prose and any
// remaining items are bullets.
type Section struct {
	Kind      SectionKind `json:"kind"`
	Heading   string      `json:"heading"`
	Items     []string    `json:"items"`
	Narrative bool        `json:"narrative,omitempty"`
}

// DisplayTitle returns the title bar text for the card
func (p *Profile) DisplayTitle() string {
	if p.Title == "" {
		return p.Name
	}
	return p.Name + " | " + p.Title
}
