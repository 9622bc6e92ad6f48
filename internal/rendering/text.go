package rendering

import (
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/jonathan/cardforge/internal/types"
)

// PlacedLine is one line of text positioned inside the text region.
// Coordinates are relative to the region's top-left corner.
type PlacedLine struct {
	// Section indexes CardContent.Sections
	Section  int
	Text     string
	Heading  bool
	X        int
	Baseline int
	// Box is the line's advance box: from X to the end of its advance,
	// from the ascent line to the descent line
	Box image.Rectangle
	// Marker is the bullet square drawn before the first line of a bullet
	Marker image.Rectangle
}

// TextPlan is the result of laying out CardContent in a text region
type TextPlan struct {
	Lines []PlacedLine
	// Drawn and Dropped list section headers in canonical order
	Drawn   []string
	Dropped []string
	// TrimmedBullets counts bullets dropped from the end of the first section
	TrimmedBullets int
}

// planText lays out content inside a w x h region. Sections are placed
// whole; the first section that does not fit ends the plan, and later
// sections are dropped with it. Only the first placed section may be
// shortened, by dropping trailing bullets.
func planText(content *types.CardContent, faces *faceSet, w, h int) TextPlan {
	var plan TextPlan
	if content == nil {
		return plan
	}

	cursor := 0
	stopped := false
	for i, section := range content.Sections {
		header := section.Header()
		if stopped {
			plan.Dropped = append(plan.Dropped, header)
			continue
		}

		top := cursor
		if len(plan.Drawn) > 0 {
			top += faces.sectionGap
		}

		lines, end, trimmed, ok := placeSection(section, faces, w, h, top, len(plan.Drawn) == 0)
		if !ok {
			plan.Dropped = append(plan.Dropped, header)
			stopped = true
			continue
		}

		for j := range lines {
			lines[j].Section = i
		}
		plan.Lines = append(plan.Lines, lines...)
		plan.Drawn = append(plan.Drawn, header)
		plan.TrimmedBullets += trimmed
		cursor = end
	}
	return plan
}

// placeSection positions one section starting at top. When partial is set,
// bullets that do not fit are dropped from the end instead of failing the
// whole section. A bullet holding a word wider than the region does not fit
// either, so it and every later bullet go with it. A section must place its
// header and at least one bullet.
func placeSection(section types.SectionSummary, faces *faceSet, w, h, top int, partial bool) ([]PlacedLine, int, int, bool) {
	headerLines, ok := wrapText(faces.heading, section.Header(), fixed.I(w))
	if !ok {
		return nil, 0, 0, false
	}

	var lines []PlacedLine
	y := top
	for _, text := range headerLines {
		if y+faces.headingHeight > h {
			return nil, 0, 0, false
		}
		lines = append(lines, placeLine(faces.heading, text, true, 0, y, faces.headingAscent, faces.headingHeight))
		y += faces.headingAdvance
	}

	placed, trimmed := 0, 0
	for i, bullet := range section.Lines {
		wrapped, ok := wrapText(faces.body, bullet, fixed.I(w-faces.bulletIndent))

		blockTop := y
		if placed > 0 {
			blockTop += faces.bulletGap
		}
		if ok {
			ok = blockTop+(len(wrapped)-1)*faces.bodyAdvance+faces.bodyHeight <= h
		}
		if !ok {
			if !partial {
				return nil, 0, 0, false
			}
			trimmed = len(section.Lines) - i
			break
		}

		by := blockTop
		for j, text := range wrapped {
			line := placeLine(faces.body, text, false, faces.bulletIndent, by, faces.bodyAscent, faces.bodyHeight)
			if j == 0 {
				line.Marker = bulletMarker(faces, by)
			}
			lines = append(lines, line)
			by += faces.bodyAdvance
		}
		y = blockTop + len(wrapped)*faces.bodyAdvance
		placed++
	}

	if placed == 0 {
		return nil, 0, 0, false
	}
	return lines, y, trimmed, true
}

func placeLine(face font.Face, text string, heading bool, x, top, ascent, height int) PlacedLine {
	width := font.MeasureString(face, text).Ceil()
	return PlacedLine{
		Text:     text,
		Heading:  heading,
		X:        x,
		Baseline: top + ascent,
		Box:      image.Rect(x, top, x+width, top+height),
	}
}

// bulletMarker is a small square centered in the indent at x-height
func bulletMarker(faces *faceSet, top int) image.Rectangle {
	side := max(faces.bodyAscent/3, 2)
	x := (faces.bulletIndent - side) / 2
	y := top + faces.bodyAscent - faces.bodyAscent/2 - side/2
	return image.Rect(x, y, x+side, y+side)
}

// wrapText breaks text into lines no wider than maxWidth using the face's
// own measurements. It fails if a single word is wider than maxWidth, since
// such a word could only be drawn by cutting it.
func wrapText(face font.Face, text string, maxWidth fixed.Int26_6) ([]string, bool) {
	words := strings.Fields(text)
	if len(words) == 0 || maxWidth <= 0 {
		return nil, false
	}

	var lines []string
	current := ""
	for _, word := range words {
		if font.MeasureString(face, word) > maxWidth {
			return nil, false
		}
		if current == "" {
			current = word
			continue
		}
		candidate := current + " " + word
		if font.MeasureString(face, candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current), true
}
