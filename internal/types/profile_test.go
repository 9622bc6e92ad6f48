package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionKind_Text(t *testing.T) {
	for _, kind := range CanonicalKinds {
		text, err := kind.MarshalText()
		require.NoError(t, err)

		var back SectionKind
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, kind, back)
	}

	_, err := SectionKind(42).MarshalText()
	assert.Error(t, err)

	var k SectionKind
	assert.Error(t, k.UnmarshalText([]byte("hobbies")))
}

func TestSectionKind_Labels(t *testing.T) {
	tests := []struct {
		kind  SectionKind
		str   string
		label string
	}{
		{KindAbout, "about", "About"},
		{KindCompetencies, "competencies", "Key Competencies"},
		{KindAspirations, "aspirations", "Aspirations"},
		{KindAchievements, "achievements", "Achievements"},
		{KindOther, "other", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.kind.String())
			assert.Equal(t, tt.label, tt.kind.Label())
		})
	}
}

func TestParseSectionKind(t *testing.T) {
	kind, ok := ParseSectionKind("Achievements")
	assert.True(t, ok)
	assert.Equal(t, KindAchievements, kind)

	kind, ok = ParseSectionKind("unknown")
	assert.False(t, ok)
	assert.Equal(t, KindOther, kind)
}

func TestProfile_JSON(t *testing.T) {
	profile := Profile{
		Name:  "Jane Doe",
		Title: "Staff Engineer",
		Sections: []Section{
			{Kind: KindCompetencies, Heading: "Skills", Items: []string{"Go", "Kubernetes"}},
		},
	}

	data, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"competencies"`)
	assert.NotContains(t, string(data), "narrative")

	var back Profile
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, profile, back)
}

func TestProfile_Helpers(t *testing.T) {
	p := &Profile{
		Name:  "Jane Doe",
		Title: "Engineer",
		Sections: []Section{
			{Kind: KindOther, Heading: "Hobbies"},
			{Kind: KindAbout, Heading: "About"},
			{Kind: KindOther, Heading: "Volunteering"},
		},
	}

	assert.Equal(t, "Jane Doe | Engineer", p.DisplayTitle())

	p.Title = ""
	assert.Equal(t, "Jane Doe", p.DisplayTitle())
}
