package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cardforge/internal/types"
)

func TestEmbeddedSchemas_ValidJSON(t *testing.T) {
	for _, name := range []string{ProfileSchema, CardContentSchema} {
		t.Run(name, func(t *testing.T) {
			content, err := Schema(name)
			require.NoError(t, err)

			var v map[string]any
			assert.NoError(t, json.Unmarshal([]byte(content), &v))
		})
	}

	_, err := Schema("missing.schema.json")
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateProfile(t *testing.T) {
	profile := types.Profile{
		Name:  "Jane Doe",
		Title: "Engineer",
		Sections: []types.Section{
			{Kind: types.KindAbout, Heading: "About", Items: []string{"I build things"}, Narrative: true},
			{Kind: types.KindOther, Heading: "Hobbies", Items: []string{"Climbing"}},
		},
	}
	data, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.NoError(t, ValidateProfile(data))

	tests := []struct {
		name string
		doc  string
	}{
		{"missing name", `{"title": "", "sections": []}`},
		{"unknown kind", `{"name": "a", "title": "", "sections": [{"kind": "hobby", "heading": "x", "items": []}]}`},
		{"wrong items type", `{"name": "a", "title": "", "sections": [{"kind": "about", "heading": "x", "items": "text"}]}`},
		{"extra field", `{"name": "a", "title": "", "sections": [], "photo": "x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfile([]byte(tt.doc))
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateCardContent(t *testing.T) {
	content := types.CardContent{
		Budget: types.DefaultLayoutBudget(),
		Sections: []types.SectionSummary{
			{Kind: types.KindAbout, Heading: "About", Lines: []string{"Builds things"}, Source: types.SourceModel},
			{Kind: types.KindAchievements, Heading: "Wins", Lines: []string{"Shipped"}, Source: types.SourceFallback, Degradation: "timeout"},
		},
	}
	data, err := json.Marshal(content)
	require.NoError(t, err)
	assert.NoError(t, ValidateCardContent(data))

	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"budget out of range", `{"budget": {"max_lines_per_section": 0, "max_chars_per_line": 90}, "sections": []}`, "budget.max_lines_per_section"},
		{"bad source", `{"budget": {"max_lines_per_section": 4, "max_chars_per_line": 90}, "sections": [{"kind": "about", "heading": "", "lines": ["a"], "source": "guess"}]}`, "sections.0.source"},
		{"empty lines", `{"budget": {"max_lines_per_section": 4, "max_chars_per_line": 90}, "sections": [{"kind": "about", "heading": "", "lines": [], "source": "model"}]}`, "sections.0.lines"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCardContent([]byte(tt.doc))
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)

			var fields []string
			for _, e := range validationErr.Errors {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.field)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["id"], "properties": {"id": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"id": "x"}`))

	err := ValidateJSONString(schema, `{}`)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)

	err = ValidateJSONString(`{not json`, `{}`)
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}
