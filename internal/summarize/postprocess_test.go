package summarize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cardforge/internal/llm"
	"github.com/jonathan/cardforge/internal/types"
)

func TestPostProcess(t *testing.T) {
	budget := types.LayoutBudget{MaxLinesPerSection: 3, MaxCharsPerLine: 40}

	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{"plain bullets", "- Go\n- Rust", []string{"Go", "Rust"}},
		{"case-insensitive dedupe", "- Go\n- GO\n- Rust", []string{"Go", "Rust"}},
		{"count capped", "- a1\n- b2\n- c3\n- d4", []string{"a1", "b2", "c3"}},
		{"preamble and fences", "```\nSkills:\n1. Go\n2. Rust\n```", []string{"Go", "Rust"}},
		{
			"length capped",
			"- Designed and operated a multi-region event streaming platform",
			[]string{"Designed and operated a multi-region…"},
		},
		{"line too long dropped", "- Supercalifragilisticexpialidocious-ness-extreme\n- Go", []string{"Go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, failure := PostProcess(tt.raw, budget)
			require.Nil(t, failure)
			assert.Equal(t, tt.expected, lines)
		})
	}
}

func TestPostProcess_Degenerate(t *testing.T) {
	budget := types.LayoutBudget{MaxLinesPerSection: 4, MaxCharsPerLine: 40}

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"only whitespace", "  \n\t\n"},
		{"only preamble", "Here are the skills:"},
		{"invalid utf8", "- Go\xff\xfe"},
		{"repeated line", "- Go\n- go\n- Go"},
		{"token run", "- the the the the the the end"},
		{"low distinct ratio", "- a b a b a b\n- b a b a b a"},
		{"nothing fits", "- Supercalifragilisticexpialidocious-ness-extreme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, failure := PostProcess(tt.raw, budget)
			assert.Nil(t, lines)
			require.NotNil(t, failure)
			assert.Equal(t, llm.ReasonDegenerate, failure.Reason)
			assert.False(t, failure.Transient())
		})
	}
}
