package rendering

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/jonathan/cardforge/internal/types"
)

// Composer draws cards with a fixed theme
type Composer struct {
	theme  Theme
	logger *zap.Logger
}

// NewComposer creates a Composer. A nil logger discards logs.
func NewComposer(theme Theme, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(theme.TitleSizes) == 0 {
		theme.TitleSizes = DefaultTheme().TitleSizes
	}
	return &Composer{theme: theme, logger: logger}
}

// Compose draws a card with the default theme
func Compose(profile *types.Profile, content *types.CardContent, photo image.Image, spec RenderSpec) (*image.RGBA, error) {
	return NewComposer(DefaultTheme(), nil).Compose(profile, content, photo, spec)
}

// Compose draws the title bar, the photo and as much of content as fits
// into a new spec.Width x spec.Height image. Overflowing sections are
// omitted, never clipped.
func (c *Composer) Compose(profile *types.Profile, content *types.CardContent, photo image.Image, spec RenderSpec) (*image.RGBA, error) {
	canvas, _, err := c.compose(profile, content, photo, spec)
	return canvas, err
}

// ComposeWithPlan is Compose that also reports which sections were drawn
func (c *Composer) ComposeWithPlan(profile *types.Profile, content *types.CardContent, photo image.Image, spec RenderSpec) (*image.RGBA, TextPlan, error) {
	return c.compose(profile, content, photo, spec)
}

// Plan returns the text layout Compose would draw for content in spec
func (c *Composer) Plan(content *types.CardContent, spec RenderSpec) (TextPlan, error) {
	if err := spec.Validate(); err != nil {
		return TextPlan{}, err
	}
	faces, err := newFaceSet(c.theme, spec.scale())
	if err != nil {
		return TextPlan{}, err
	}
	defer faces.Close()
	return planText(content, faces, spec.Text.Dx(), spec.Text.Dy()), nil
}

func (c *Composer) compose(profile *types.Profile, content *types.CardContent, photo image.Image, spec RenderSpec) (*image.RGBA, TextPlan, error) {
	if err := spec.Validate(); err != nil {
		return nil, TextPlan{}, err
	}
	if err := checkPhoto(photo); err != nil {
		return nil, TextPlan{}, err
	}

	faces, err := newFaceSet(c.theme, spec.scale())
	if err != nil {
		return nil, TextPlan{}, err
	}
	defer faces.Close()

	canvas := image.NewRGBA(spec.Bounds())
	fill(canvas, canvas.Bounds(), c.theme.Background)

	if err := c.drawTitleBar(canvas, spec, profile); err != nil {
		return nil, TextPlan{}, err
	}

	if !spec.Photo.Empty() {
		fill(canvas, spec.Photo, c.theme.PhotoBackdrop)
		FitPhoto(region(canvas, spec.Photo), spec.Photo, photo)
	}

	plan := planText(content, faces, spec.Text.Dx(), spec.Text.Dy())
	if !spec.Text.Empty() {
		c.drawText(region(canvas, spec.Text), spec.Text.Min, faces, plan)
	}
	if len(plan.Dropped) > 0 || plan.TrimmedBullets > 0 {
		c.logger.Info("card text did not fit",
			zap.Strings("drawn", plan.Drawn),
			zap.Strings("dropped", plan.Dropped),
			zap.Int("trimmed_bullets", plan.TrimmedBullets))
	}

	return canvas, plan, nil
}

// drawTitleBar draws the name in bold and the title in regular weight at the
// largest scale size that fits, centered in the bar
func (c *Composer) drawTitleBar(canvas *image.RGBA, spec RenderSpec, profile *types.Profile) error {
	bar := spec.TitleBar
	if bar.Empty() {
		return nil
	}
	fill(canvas, bar, c.theme.TitleBar)
	if profile == nil || profile.Name == "" {
		return nil
	}

	regular, bold, err := parsedFonts()
	if err != nil {
		return &LayoutError{Stage: StageFonts, Message: "failed to parse embedded fonts", Cause: err}
	}

	name := profile.Name
	rest := strings.TrimPrefix(profile.DisplayTitle(), name)

	padX := spec.Margin
	padY := max(bar.Dy()/8, 1)
	avail := fixed.I(bar.Dx() - 2*padX)
	scale := spec.scale()

	var nameFace, restFace font.Face
	fits := false
	for i, size := range c.theme.TitleSizes {
		if nameFace, err = newFace(bold, math.Max(size*scale, 1)); err != nil {
			return &LayoutError{Stage: StageFonts, Message: "failed to create title face", Cause: err}
		}
		if restFace, err = newFace(regular, math.Max(size*scale, 1)); err != nil {
			_ = nameFace.Close()
			return &LayoutError{Stage: StageFonts, Message: "failed to create title face", Cause: err}
		}

		m := nameFace.Metrics()
		width := titleWidth(nameFace, restFace, name, rest)
		fits = width <= avail && (m.Ascent+m.Descent).Ceil() <= bar.Dy()-2*padY
		if fits || i == len(c.theme.TitleSizes)-1 {
			break
		}
		_ = nameFace.Close()
		_ = restFace.Close()
	}
	defer func() { _ = nameFace.Close() }()
	defer func() { _ = restFace.Close() }()

	if !fits {
		name, rest = shortenTitle(nameFace, restFace, name, rest, avail)
		c.logger.Debug("title shortened to fit the bar", zap.String("title", name+rest))
		if name == "" {
			return nil
		}
	}

	m := nameFace.Metrics()
	width := titleWidth(nameFace, restFace, name, rest)
	x := fixed.I(bar.Min.X) + (fixed.I(bar.Dx())-width)/2
	if x < fixed.I(bar.Min.X+padX) {
		x = fixed.I(bar.Min.X + padX)
	}
	baseline := bar.Min.Y + (bar.Dy()-(m.Ascent+m.Descent).Ceil())/2 + m.Ascent.Ceil()

	dst := region(canvas, bar)
	src := image.NewUniform(c.theme.TitleText)
	d := &font.Drawer{Dst: dst, Src: src, Face: nameFace, Dot: fixed.Point26_6{X: x, Y: fixed.I(baseline)}}
	d.DrawString(name)
	if rest != "" {
		d.Face = restFace
		d.DrawString(rest)
	}
	return nil
}

// shortenTitle makes the title fit avail at the smallest size: the title part
// goes first, then the name loses trailing words and ends with an ellipsis.
// An empty name means nothing fits.
func shortenTitle(nameFace, restFace font.Face, name, rest string, avail fixed.Int26_6) (string, string) {
	if titleWidth(nameFace, restFace, name, rest) <= avail {
		return name, rest
	}
	if font.MeasureString(nameFace, name) <= avail {
		return name, ""
	}

	words := strings.Fields(name)
	for n := len(words) - 1; n > 0; n-- {
		cut := strings.Join(words[:n], " ") + types.EllipsisMarker
		if font.MeasureString(nameFace, cut) <= avail {
			return cut, ""
		}
	}
	return "", ""
}

func titleWidth(nameFace, restFace font.Face, name, rest string) fixed.Int26_6 {
	return font.MeasureString(nameFace, name) + font.MeasureString(restFace, rest)
}

// drawText draws a plan into dst, whose bounds are the text region at origin
func (c *Composer) drawText(dst draw.Image, origin image.Point, faces *faceSet, plan TextPlan) {
	heading := image.NewUniform(c.theme.Heading)
	body := image.NewUniform(c.theme.Body)

	for _, line := range plan.Lines {
		d := &font.Drawer{
			Dst:  dst,
			Src:  body,
			Face: faces.body,
			Dot:  fixed.P(origin.X+line.X, origin.Y+line.Baseline),
		}
		if line.Heading {
			d.Src = heading
			d.Face = faces.heading
		}
		d.DrawString(line.Text)

		if !line.Marker.Empty() {
			draw.Draw(dst, line.Marker.Add(origin), image.NewUniform(c.theme.Accent), image.Point{}, draw.Src)
		}
	}
}

// region returns the part of canvas inside r; drawing into it cannot touch
// pixels outside r
func region(canvas *image.RGBA, r image.Rectangle) *image.RGBA {
	return canvas.SubImage(r).(*image.RGBA)
}

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}
