package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cardforge/internal/types"
)

func TestGet_ValidPrompt(t *testing.T) {
	prompt, err := Get(SummarizeFile, "competencies")
	require.NoError(t, err)
	assert.Contains(t, prompt, "skills")
	assert.Contains(t, prompt, "{{.MaxLines}}")
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get(SummarizeFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", Format(template, data))
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	assert.Equal(t, template, Format(template, map[string]string{})) // Placeholder remains
}

func TestGet_EveryKindHasInstruction(t *testing.T) {
	for _, kind := range types.CanonicalKinds {
		instruction, err := Get(SummarizeFile, kind.String())
		require.NoError(t, err, kind.String())
		assert.NotEmpty(t, instruction)
	}
}

func TestSectionInstruction(t *testing.T) {
	budget := types.LayoutBudget{MaxLinesPerSection: 3, MaxCharsPerLine: 60}

	for _, kind := range types.CanonicalKinds {
		t.Run(kind.String(), func(t *testing.T) {
			instruction, err := SectionInstruction(kind, "", budget)
			require.NoError(t, err)
			assert.NotContains(t, instruction, "{{.")
			assert.Contains(t, instruction, "60 characters")
		})
	}

	instruction, err := SectionInstruction(types.KindOther, "Volunteering", budget)
	require.NoError(t, err)
	assert.Contains(t, instruction, `"Volunteering"`)
	assert.Contains(t, instruction, "at most 3")
}

func TestCaching(t *testing.T) {
	prompt1, err := Get(SummarizeFile, "about")
	require.NoError(t, err)
	prompt2, err := Get(SummarizeFile, "about")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
