package rendering

import (
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Theme holds the fixed visual parameters of a card. Font sizes are points
// on the 600px reference card and scale with the canvas height.
type Theme struct {
	Background    color.RGBA
	TitleBar      color.RGBA
	TitleText     color.RGBA
	Heading       color.RGBA
	Body          color.RGBA
	Accent        color.RGBA
	PhotoBackdrop color.RGBA

	// TitleSizes is the fixed scale tried, largest first, for the title bar
	TitleSizes  []float64
	HeadingSize float64
	BodySize    float64
	LineSpacing float64
}

// DefaultTheme returns the standard card look
func DefaultTheme() Theme {
	return Theme{
		Background:    color.RGBA{R: 250, G: 251, B: 252, A: 255},
		TitleBar:      color.RGBA{R: 52, G: 73, B: 93, A: 255},
		TitleText:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Heading:       color.RGBA{R: 52, G: 73, B: 93, A: 255},
		Body:          color.RGBA{R: 44, G: 62, B: 80, A: 255},
		Accent:        color.RGBA{R: 46, G: 204, B: 113, A: 255},
		PhotoBackdrop: color.RGBA{R: 236, G: 240, B: 241, A: 255},
		TitleSizes:    []float64{32, 28, 24, 20, 18, 16, 14, 12, 10},
		HeadingSize:   17,
		BodySize:      13,
		LineSpacing:   1.25,
	}
}

var (
	fontsOnce   sync.Once
	fontRegular *opentype.Font
	fontBold    *opentype.Font
	fontsErr    error
)

// parsedFonts parses the embedded Go fonts once per process
func parsedFonts() (regular, bold *opentype.Font, err error) {
	fontsOnce.Do(func() {
		if fontRegular, fontsErr = opentype.Parse(goregular.TTF); fontsErr != nil {
			return
		}
		fontBold, fontsErr = opentype.Parse(gobold.TTF)
	})
	return fontRegular, fontBold, fontsErr
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// faceSet is the heading and body faces for one composition. Faces are not
// safe for concurrent use, so every Compose call builds its own.
type faceSet struct {
	heading font.Face
	body    font.Face

	headingAscent  int
	headingHeight  int
	headingAdvance int
	bodyAscent     int
	bodyHeight     int
	bodyAdvance    int

	bulletIndent int
	bulletGap    int
	sectionGap   int
	avgCharWidth float64
}

func newFaceSet(theme Theme, scale float64) (*faceSet, error) {
	regular, bold, err := parsedFonts()
	if err != nil {
		return nil, &LayoutError{Stage: StageFonts, Message: "failed to parse embedded fonts", Cause: err}
	}

	heading, err := newFace(bold, math.Max(theme.HeadingSize*scale, 4))
	if err != nil {
		return nil, &LayoutError{Stage: StageFonts, Message: "failed to create heading face", Cause: err}
	}
	body, err := newFace(regular, math.Max(theme.BodySize*scale, 4))
	if err != nil {
		_ = heading.Close()
		return nil, &LayoutError{Stage: StageFonts, Message: "failed to create body face", Cause: err}
	}

	spacing := math.Max(theme.LineSpacing, 1)
	hm, bm := heading.Metrics(), body.Metrics()
	f := &faceSet{
		heading:       heading,
		body:          body,
		headingAscent: hm.Ascent.Ceil(),
		headingHeight: (hm.Ascent + hm.Descent).Ceil(),
		bodyAscent:    bm.Ascent.Ceil(),
		bodyHeight:    (bm.Ascent + bm.Descent).Ceil(),
	}
	f.headingAdvance = int(math.Ceil(float64(f.headingHeight) * spacing))
	f.bodyAdvance = int(math.Ceil(float64(f.bodyHeight) * spacing))
	f.bulletIndent = max(f.bodyHeight, 4)
	f.bulletGap = max(f.bodyHeight/4, 1)
	f.sectionGap = max(f.bodyHeight*3/4, 2)

	const sample = "the quick brown fox jumps over the lazy dog"
	f.avgCharWidth = math.Max(fixedToFloat(font.MeasureString(body, sample))/float64(len(sample)), 1)
	return f, nil
}

// Close releases both faces
func (f *faceSet) Close() {
	_ = f.heading.Close()
	_ = f.body.Close()
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
