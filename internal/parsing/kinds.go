package parsing

import (
	"strings"
	"unicode"

	"github.com/jonathan/cardforge/internal/types"
)

// kindKeyword maps a heading word prefix to a section kind.
// Exact keywords must match the whole word.
type kindKeyword struct {
	prefix string
	kind   types.SectionKind
	exact  bool
}

// kindKeywords is consulted for each heading word in turn; the first word
// that matches any keyword decides the kind
var kindKeywords = []kindKeyword{
	{"about", types.KindAbout, false},
	{"summary", types.KindAbout, false},
	{"overview", types.KindAbout, false},
	{"bio", types.KindAbout, true},
	{"competenc", types.KindCompetencies, false},
	{"skill", types.KindCompetencies, false},
	{"expertise", types.KindCompetencies, false},
	{"strength", types.KindCompetencies, false},
	{"aspir", types.KindAspirations, false},
	{"goal", types.KindAspirations, false},
	{"ambition", types.KindAspirations, false},
	{"achieve", types.KindAchievements, false},
	{"accomplish", types.KindAchievements, false},
	{"award", types.KindAchievements, false},
}

// ClassifyHeading returns the section kind for a level-2 heading
func ClassifyHeading(heading string) types.SectionKind {
	words := strings.FieldsFunc(strings.ToLower(heading), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		for _, kw := range kindKeywords {
			if kw.exact && w == kw.prefix {
				return kw.kind
			}
			if !kw.exact && strings.HasPrefix(w, kw.prefix) {
				return kw.kind
			}
		}
	}
	return types.KindOther
}
