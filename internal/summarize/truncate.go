package summarize

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cardforge/internal/types"
)

// trailingCutset is stripped from a cut line before the ellipsis is appended
const trailingCutset = " ,;:.-–—/&("

// TruncateLine collapses whitespace in line and, if it is longer than
// maxChars runes, cuts it at the last word boundary that leaves room for the
// ellipsis marker. It reports whether the line was cut. A line whose first
// word alone does not fit comes back empty.
func TruncateLine(line string, maxChars int) (string, bool) {
	words := strings.Fields(line)
	normalized := strings.Join(words, " ")
	if utf8.RuneCountInString(normalized) <= maxChars {
		return normalized, false
	}

	limit := maxChars - utf8.RuneCountInString(types.EllipsisMarker)
	var b strings.Builder
	n := 0
	for _, w := range words {
		need := utf8.RuneCountInString(w)
		if n > 0 {
			need++
		}
		if n+need > limit {
			break
		}
		if n > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
		n += need
	}

	out := strings.TrimRight(b.String(), trailingCutset)
	if out == "" {
		return "", true
	}
	return out + types.EllipsisMarker, true
}

// clampBudget forces a budget into the range the composer can honor
func clampBudget(b types.LayoutBudget) types.LayoutBudget {
	b.MaxLinesPerSection = clamp(b.MaxLinesPerSection, 1, 20)
	b.MaxCharsPerLine = clamp(b.MaxCharsPerLine, 8, 400)
	return b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
