package summarize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/cardforge/internal/llm"
	"github.com/jonathan/cardforge/internal/types"
)

// Repetition thresholds for degenerate output
const (
	maxRepeatedLine  = 3
	maxTokenRun      = 6
	minWordsForRatio = 12
	minDistinctRatio = 0.3
)

// PostProcess turns a raw completion into card lines: bullets are parsed,
// deduplicated case-insensitively, length-capped like the fallback path and
// count-capped. Unusable output is reported as a degenerate InferenceFailure.
func PostProcess(raw string, budget types.LayoutBudget) ([]string, *llm.InferenceFailure) {
	budget = clampBudget(budget)

	if !utf8.ValidString(raw) {
		return nil, degenerate("output is not valid UTF-8")
	}

	bullets := llm.ParseBullets(raw)
	if len(bullets) == 0 {
		return nil, degenerate("output is empty")
	}
	if msg := repetition(bullets); msg != "" {
		return nil, degenerate(msg)
	}

	seen := make(map[string]bool, len(bullets))
	lines := make([]string, 0, budget.MaxLinesPerSection)
	for _, bullet := range bullets {
		if len(lines) == budget.MaxLinesPerSection {
			break
		}
		line, _ := TruncateLine(bullet, budget.MaxCharsPerLine)
		if line == "" {
			continue
		}
		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil, degenerate("no line fits the character budget")
	}
	return lines, nil
}

// repetition describes runaway repetition in bullets, or returns ""
func repetition(bullets []string) string {
	counts := make(map[string]int, len(bullets))
	for _, b := range bullets {
		key := strings.ToLower(strings.Join(strings.Fields(b), " "))
		counts[key]++
		if counts[key] >= maxRepeatedLine {
			return fmt.Sprintf("line %q repeated %d times", b, counts[key])
		}
	}

	var words []string
	for _, b := range bullets {
		for _, w := range strings.Fields(b) {
			w = strings.ToLower(strings.TrimFunc(w, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsDigit(r)
			}))
			if w != "" {
				words = append(words, w)
			}
		}
	}

	run := 1
	for i := 1; i < len(words); i++ {
		if words[i] != words[i-1] {
			run = 1
			continue
		}
		run++
		if run >= maxTokenRun {
			return fmt.Sprintf("token %q repeated %d times in a row", words[i], run)
		}
	}

	if len(words) >= minWordsForRatio {
		distinct := make(map[string]struct{}, len(words))
		for _, w := range words {
			distinct[w] = struct{}{}
		}
		if float64(len(distinct)) < minDistinctRatio*float64(len(words)) {
			return fmt.Sprintf("only %d distinct words in %d", len(distinct), len(words))
		}
	}
	return ""
}

func degenerate(msg string) *llm.InferenceFailure {
	return &llm.InferenceFailure{Reason: llm.ReasonDegenerate, Message: msg}
}
