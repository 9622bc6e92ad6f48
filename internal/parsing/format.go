package parsing

import (
	"strings"

	"github.com/jonathan/cardforge/internal/types"
)

// Format renders a Profile in the canonical document form.
// Parsing the result yields an equal Profile.
func Format(p *types.Profile) string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(escapeInline(p.Name))
	if p.Title != "" {
		sb.WriteString(NameTitleSeparator)
		sb.WriteString(escapeInline(p.Title))
	}
	sb.WriteString("\n")

	for _, s := range p.Sections {
		sb.WriteString("\n## ")
		sb.WriteString(escapeInline(s.Heading))
		sb.WriteString("\n\n")

		items := s.Items
		if s.Narrative && len(items) > 0 {
			sb.WriteString(escapeBlock(items[0]))
			sb.WriteString("\n")
			items = items[1:]
			if len(items) > 0 {
				sb.WriteString("\n")
			}
		}
		for _, item := range items {
			sb.WriteString("- ")
			sb.WriteString(escapeBlock(item))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// inlineSignificant are characters that open inline markup anywhere in a line
const inlineSignificant = "\\`*_[]<>&#~|!"

// escapeInline backslash-escapes characters that would otherwise parse as markup
func escapeInline(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(inlineSignificant, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// escapeBlock escapes s and a leading list marker that would open a new block
func escapeBlock(s string) string {
	s = escapeInline(s)
	if s == "" {
		return s
	}
	switch s[0] {
	case '-', '+':
		return "\\" + s
	}
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits <= 9 && digits < len(s) && (s[digits] == '.' || s[digits] == ')') {
		return s[:digits] + "\\" + s[digits:]
	}
	return s
}
