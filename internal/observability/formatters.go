// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cardforge/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %s │\n", pad(shorten(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// shorten cuts s to at most n runes, marking the cut with "..."
func shorten(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes; fmt's width counts bytes
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

// PrintProfile outputs a human-readable summary of the parsed profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Name))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", profile.Title))
	sb.WriteString(fmt.Sprintf("Sections: %d\n", len(profile.Sections)))

	for _, s := range profile.Sections {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s (%s)\n", s.Heading, s.Kind))
		count := min(len(s.Items), maxItemsToShow)
		for i := 0; i < count; i++ {
			marker := "•"
			if i == 0 && s.Narrative {
				marker = "¶"
			}
			sb.WriteString(fmt.Sprintf("  %s %s\n", marker, s.Items[i]))
		}
		if len(s.Items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(s.Items)-maxItemsToShow))
		}
	}

	p.printBox("PARSED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCardContent outputs the summarized lines per section with the path
// that produced them.
func (p *Printer) PrintCardContent(content *types.CardContent) {
	if content == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Budget: %d lines x %d chars\n",
		content.Budget.MaxLinesPerSection, content.Budget.MaxCharsPerLine))

	for i, s := range content.Sections {
		sb.WriteString("\n")
		source := string(s.Source)
		if s.Degradation != "" {
			source += ": " + s.Degradation
		}
		sb.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, s.Header(), source))
		for _, line := range s.Lines {
			sb.WriteString(fmt.Sprintf("  • %s\n", line))
		}
	}

	p.printBox("CARD CONTENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLayout outputs which sections made it onto the card.
func (p *Printer) PrintLayout(drawn, dropped []string, trimmedBullets int) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Drawn (%d):\n", len(drawn)))
	for _, h := range drawn {
		sb.WriteString(fmt.Sprintf("  ✓ %s\n", h))
	}
	if len(dropped) > 0 {
		sb.WriteString(fmt.Sprintf("\nDropped for space (%d):\n", len(dropped)))
		for _, h := range dropped {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", h))
		}
	}
	if trimmedBullets > 0 {
		sb.WriteString(fmt.Sprintf("\nTrailing bullets trimmed: %d\n", trimmedBullets))
	}

	p.printBox("CARD LAYOUT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintViolations outputs any constraint violations found.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations *types.Violations) {
	if violations == nil || len(violations.Violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ NO VIOLATIONS FOUND", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(violations.Violations)))

	for i, v := range violations.Violations {
		sb.WriteString(fmt.Sprintf("⚠ %s (%s)\n", v.Type, v.Severity))
		sb.WriteString(fmt.Sprintf("  %s\n", shorten(v.Details, 45)))
		if i < len(violations.Violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("CONTENT VIOLATIONS", sb.String())
}
