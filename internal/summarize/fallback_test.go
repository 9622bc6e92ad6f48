package summarize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cardforge/internal/types"
)

func TestFallback(t *testing.T) {
	budget := types.LayoutBudget{MaxLinesPerSection: 2, MaxCharsPerLine: 24}

	tests := []struct {
		name     string
		items    []string
		expected []string
	}{
		{"first items kept", []string{"Go", "Rust", "SQL"}, []string{"Go", "Rust"}},
		{"long prose truncated", []string{"I build reliable backend systems for small teams."}, []string{"I build reliable…"}},
		{"unusable items skipped", []string{"   ", "Pneumonoultramicroscopicsilicovolcanoconiosis", "Go"}, []string{"Go"}},
		{"no items", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Fallback(tt.items, budget))
		})
	}
}

func TestFallback_Pure(t *testing.T) {
	items := lawLines()
	budget := types.DefaultLayoutBudget()

	first := Fallback(items, budget)
	second := Fallback(items, budget)
	assert.Equal(t, first, second)
	assert.Len(t, first, budget.MaxLinesPerSection)
}
