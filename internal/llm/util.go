// Package llm - util.go provides shared utilities for model response processing.
package llm

import (
	"regexp"
	"strings"
)

var (
	// listMarkerPattern matches leading bullet or ordinal markers: "-", "*", "•", "1.", "2)"
	listMarkerPattern = regexp.MustCompile(`^(?:[-*+•·]|\d{1,2}[.)])\s+`)
	// emphasisPattern matches bold/italic/code wrappers around a run of text
	emphasisPattern = regexp.MustCompile("(\\*\\*|__|\\*|`)([^*`]+?)(\\*\\*|__|\\*|`)")
)

// CleanCodeBlock removes markdown code block wrappers from a response.
// Models often wrap output in ``` blocks even when instructed not to.
func CleanCodeBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// Skip potential language identifier on first line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := text[:idx]
		if len(firstLine) < 20 && !strings.Contains(firstLine, " ") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// ParseBullets splits a completion into candidate bullet phrases.
// Markers and emphasis are stripped; blank lines and preamble lines such as
// "Here are the skills:" are skipped.
func ParseBullets(text string) []string {
	text = CleanCodeBlock(text)

	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		marked := listMarkerPattern.MatchString(line)
		line = listMarkerPattern.ReplaceAllString(line, "")
		line = emphasisPattern.ReplaceAllString(line, "$2")
		line = strings.TrimSpace(strings.Trim(line, `"`))
		if line == "" {
			continue
		}
		if !marked && strings.HasSuffix(line, ":") {
			continue
		}
		bullets = append(bullets, line)
	}
	return bullets
}
