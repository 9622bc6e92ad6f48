package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cardforge/internal/types"
)

func TestClassifyHeading(t *testing.T) {
	tests := []struct {
		name     string
		heading  string
		expected types.SectionKind
	}{
		{"about", "About", types.KindAbout},
		{"about me", "About Me", types.KindAbout},
		{"summary", "Professional Summary", types.KindAbout},
		{"bio exact", "Bio", types.KindAbout},
		{"biology is not bio", "Biology Research", types.KindOther},
		{"competencies", "Key Competencies", types.KindCompetencies},
		{"competence singular", "Core Competence", types.KindCompetencies},
		{"skills", "SKILLS", types.KindCompetencies},
		{"aspirations", "Current Aspirations", types.KindAspirations},
		{"aspire", "What I Aspire To", types.KindAspirations},
		{"goals", "Career Goals", types.KindAspirations},
		{"achievements", "Recent Achievements", types.KindAchievements},
		{"achieved", "Things I Achieved", types.KindAchievements},
		{"accomplishments", "Accomplishments", types.KindAchievements},
		{"first matching word wins", "Goals and Skills", types.KindAspirations},
		{"punctuation", "Skills/Tools", types.KindCompetencies},
		{"unknown", "Hobbies", types.KindOther},
		{"empty", "", types.KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyHeading(tt.heading))
		})
	}
}
