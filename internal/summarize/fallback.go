package summarize

import "github.com/jonathan/cardforge/internal/types"

// Fallback is the deterministic policy used whenever the model path fails:
// the first MaxLinesPerSection usable items, each truncated at a word
// boundary. It depends only on its arguments.
func Fallback(items []string, budget types.LayoutBudget) []string {
	budget = clampBudget(budget)

	lines := make([]string, 0, budget.MaxLinesPerSection)
	for _, item := range items {
		if len(lines) == budget.MaxLinesPerSection {
			break
		}
		line, _ := TruncateLine(item, budget.MaxCharsPerLine)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
