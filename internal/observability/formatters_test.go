package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cardforge/internal/types"
)

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.Profile{
		Name:  "Jane Doe",
		Title: "Staff Engineer",
		Sections: []types.Section{
			{Kind: types.KindAbout, Heading: "About Me", Items: []string{"I build things"}, Narrative: true},
			{Kind: types.KindCompetencies, Heading: "Skills", Items: []string{"Go", "Rust", "SQL", "Kafka", "gRPC", "Terraform", "Bazel"}},
		},
	}

	p.PrintProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "PARSED PROFILE")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Staff Engineer")
	assert.Contains(t, output, "About Me (about)")
	assert.Contains(t, output, "¶ I build things")
	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "Bazel")
}

func TestPrintProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(nil)
	assert.Empty(t, buf.String())
}

func TestPrintCardContent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCardContent(&types.CardContent{
		Budget: types.DefaultLayoutBudget(),
		Sections: []types.SectionSummary{
			{Kind: types.KindAbout, Lines: []string{"Builds systems"}, Source: types.SourceModel},
			{Kind: types.KindOther, Heading: "Hobbies", Lines: []string{"Climbing"}, Source: types.SourceFallback, Degradation: "timeout"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "CARD CONTENT")
	assert.Contains(t, output, "Budget: 4 lines x 90 chars")
	assert.Contains(t, output, "1. About [model]")
	assert.Contains(t, output, "2. Hobbies [fallback: timeout]")
	assert.Contains(t, output, "• Climbing")
}

func TestPrintLayout(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintLayout([]string{"About"}, []string{"Achievements"}, 2)
	output := buf.String()

	assert.Contains(t, output, "✓ About")
	assert.Contains(t, output, "✗ Achievements")
	assert.Contains(t, output, "Trailing bullets trimmed: 2")
}

func TestPrintViolations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintViolations(nil)
	assert.Contains(t, buf.String(), "NO VIOLATIONS FOUND")

	buf.Reset()
	p.PrintViolations(&types.Violations{Violations: []types.Violation{
		{Type: "line_too_long", Severity: "error", Details: strings.Repeat("d", 80)},
	}})
	output := buf.String()
	assert.Contains(t, output, "Found 1 violations")
	assert.Contains(t, output, "line_too_long (error)")
	assert.Contains(t, output, strings.Repeat("d", 42)+"...")
}

func TestPrintBox_AlignsMultibyteText(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("TITLE", "ééé\n"+strings.Repeat("ü", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
}
