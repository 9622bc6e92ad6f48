package rendering

import (
	"fmt"
	"image"
	"math"

	"github.com/jonathan/cardforge/internal/types"
)

// Default card size in pixels
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Proportional layout constants
const (
	titleBarNum      = 7 // title bar height is 7/60 of the card height
	titleBarDen      = 60
	minTitleBar      = 24
	marginDen        = 20 // margin is 1/20 of the card height
	minMargin        = 4
	photoSharePct    = 40
	referenceHeight  = 600.0
	minPhotoSidePx   = 16
	maxLinesFromRows = 5
)

// RenderSpec is the canvas size and the regions derived from it
type RenderSpec struct {
	Width    int
	Height   int
	Margin   int
	TitleBar image.Rectangle
	Photo    image.Rectangle
	Text     image.Rectangle
}

// NewRenderSpec derives the card regions from the canvas size: a full-width
// title bar on top, the photo in the left 40% and text in the right 60%.
func NewRenderSpec(width, height int) (RenderSpec, error) {
	if width <= 0 || height <= 0 {
		return RenderSpec{}, &LayoutError{
			Stage:   StageSpec,
			Message: fmt.Sprintf("canvas dimensions must be positive, got %dx%d", width, height),
		}
	}

	bar := height * titleBarNum / titleBarDen
	if bar < minTitleBar {
		bar = min(minTitleBar, height/2)
	}
	margin := max(height/marginDen, minMargin)

	top := bar + margin
	bottom := height - margin
	split := width * photoSharePct / 100

	return RenderSpec{
		Width:    width,
		Height:   height,
		Margin:   margin,
		TitleBar: rect(0, 0, width, bar),
		Photo:    rect(margin, top, split-margin/2, bottom),
		Text:     rect(split+margin/2, top, width-margin, bottom),
	}, nil
}

// DefaultRenderSpec is the 800x600 card
func DefaultRenderSpec() RenderSpec {
	spec, _ := NewRenderSpec(DefaultWidth, DefaultHeight)
	return spec
}

// Bounds returns the full canvas rectangle
func (s RenderSpec) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

// Validate checks that s describes a drawable canvas
func (s RenderSpec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return &LayoutError{
			Stage:   StageSpec,
			Message: fmt.Sprintf("canvas dimensions must be positive, got %dx%d", s.Width, s.Height),
		}
	}
	bounds := s.Bounds()
	for name, r := range map[string]image.Rectangle{"title bar": s.TitleBar, "photo": s.Photo, "text": s.Text} {
		if !r.In(bounds) {
			return &LayoutError{
				Stage:   StageSpec,
				Message: fmt.Sprintf("%s region %v lies outside the %dx%d canvas", name, r, s.Width, s.Height),
			}
		}
	}
	return nil
}

// scale relates font sizes to the 600px reference card
func (s RenderSpec) scale() float64 {
	return float64(s.Height) / referenceHeight
}

// BudgetFor derives the summarizer's caps from the text region and the body
// font metrics at this spec's scale
func BudgetFor(spec RenderSpec) types.LayoutBudget {
	return DefaultTheme().BudgetFor(spec)
}

// BudgetFor derives the summarizer's caps for cards drawn with this theme
func (t Theme) BudgetFor(spec RenderSpec) types.LayoutBudget {
	if spec.Validate() != nil || spec.Text.Empty() {
		return types.DefaultLayoutBudget()
	}
	faces, err := newFaceSet(t, spec.scale())
	if err != nil {
		return types.DefaultLayoutBudget()
	}
	defer faces.Close()

	rows := spec.Text.Dy() / faces.bodyAdvance
	charsPerRow := int(math.Floor(float64(spec.Text.Dx()-faces.bulletIndent) / faces.avgCharWidth))

	return types.LayoutBudget{
		MaxLinesPerSection: clamp(rows/4-1, 1, maxLinesFromRows),
		MaxCharsPerLine:    clamp(2*charsPerRow, 20, 160),
	}
}

// rect is image.Rect without coordinate swapping; inverted input is empty
func rect(x0, y0, x1, y1 int) image.Rectangle {
	if x1 <= x0 || y1 <= y0 {
		return image.Rectangle{}
	}
	return image.Rect(x0, y0, x1, y1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
