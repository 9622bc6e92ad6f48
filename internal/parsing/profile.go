// Package parsing turns markdown profile documents into structured Profile values.
package parsing

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/jonathan/cardforge/internal/types"
)

// NameTitleSeparator splits the level-1 heading into name and title
const NameTitleSeparator = " - "

// Parser parses profile documents. The zero value uses NameTitleSeparator.
type Parser struct {
	Separator string
	md        goldmark.Markdown
}

// NewParser creates a Parser with the default separator
func NewParser() *Parser {
	return &Parser{Separator: NameTitleSeparator, md: goldmark.New()}
}

var defaultParser = NewParser()

// Parse builds a Profile from a markdown document using the default parser
func Parse(document string) (*types.Profile, error) {
	return defaultParser.Parse(document)
}

// ParseFile reads and parses a profile document from disk
func ParseFile(path string) (*types.Profile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}
	return Parse(string(content))
}

// Parse builds a Profile from a markdown document.
// It fails with *ParseError when the document has no usable level-1 heading.
func (p *Parser) Parse(document string) (*types.Profile, error) {
	md := p.md
	if md == nil {
		md = goldmark.New()
	}
	sep := p.Separator
	if sep == "" {
		sep = NameTitleSeparator
	}

	src := []byte(document)
	doc := md.Parser().Parse(text.NewReader(src))

	b := &builder{src: src, separator: sep, profile: types.Profile{Sections: []types.Section{}}}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		b.block(n)
	}
	b.closeSection()

	if !b.named {
		return nil, &ParseError{Message: `no level-1 heading found (expected "# Name - Title")`}
	}
	if b.profile.Name == "" {
		return nil, &ParseError{Message: "level-1 heading has an empty name", Line: b.nameLine}
	}

	return &b.profile, nil
}

// openSection accumulates content until the next heading of level 2 or higher
type openSection struct {
	heading string
	prose   []string
	bullets []string
}

type builder struct {
	src       []byte
	separator string
	profile   types.Profile
	named     bool
	nameLine  int
	current   *openSection
}

func (b *builder) block(n ast.Node) {
	switch node := n.(type) {
	case *ast.Heading:
		b.heading(node)
	case *ast.List:
		b.list(node)
	case *ast.Paragraph, *ast.TextBlock:
		b.addProse(inlineText(n, b.src))
	case *ast.Blockquote:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			b.block(c)
		}
	default:
		// code blocks, raw HTML and thematic breaks carry no card content
	}
}

func (b *builder) heading(h *ast.Heading) {
	txt := inlineText(h, b.src)
	switch h.Level {
	case 1:
		b.closeSection()
		if !b.named {
			b.named = true
			b.nameLine = b.lineOf(h)
			b.profile.Name, b.profile.Title = splitNameTitle(txt, b.separator)
		}
	case 2:
		b.closeSection()
		b.current = &openSection{heading: txt}
	default:
		// deeper headings are plain content of the open section
		b.addProse(txt)
	}
}

func (b *builder) list(l *ast.List) {
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		b.listItem(item)
	}
}

func (b *builder) listItem(item ast.Node) {
	var parts []string
	var nested []*ast.List
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		if l, ok := c.(*ast.List); ok {
			nested = append(nested, l)
			continue
		}
		if t := inlineText(c, b.src); t != "" {
			parts = append(parts, t)
		}
	}
	if b.current != nil && len(parts) > 0 {
		b.current.bullets = append(b.current.bullets, strings.Join(parts, " "))
	}
	for _, l := range nested {
		b.list(l)
	}
}

func (b *builder) addProse(s string) {
	if b.current == nil || s == "" {
		return
	}
	b.current.prose = append(b.current.prose, s)
}

// closeSection retains the open section when it collected any items
func (b *builder) closeSection() {
	cur := b.current
	b.current = nil
	if cur == nil {
		return
	}

	section := types.Section{
		Kind:    ClassifyHeading(cur.heading),
		Heading: cur.heading,
	}
	if len(cur.prose) > 0 {
		section.Items = append(section.Items, strings.Join(cur.prose, " "))
		section.Narrative = true
	}
	section.Items = append(section.Items, cur.bullets...)
	if len(section.Items) == 0 {
		return
	}
	b.profile.Sections = append(b.profile.Sections, section)
}

func (b *builder) lineOf(n ast.Node) int {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0
	}
	return 1 + bytes.Count(b.src[:lines.At(0).Start], []byte("\n"))
}

// splitNameTitle pads the heading so a separator at either edge still splits
func splitNameTitle(heading, sep string) (string, string) {
	padded := " " + heading + " "
	idx := strings.Index(padded, sep)
	if idx < 0 {
		return strings.TrimSpace(heading), ""
	}
	return strings.TrimSpace(padded[:idx]), strings.TrimSpace(padded[idx+len(sep):])
}

// decodeText resolves backslash escapes and character references in one
// pass, as goldmark's HTML renderer does, so an escaped "&" stays literal
func decodeText(v []byte) []byte {
	out := make([]byte, 0, len(v))
	start := 0
	for i := 0; i < len(v); i++ {
		if v[i] == '\\' && i+1 < len(v) && util.IsPunct(v[i+1]) {
			out = append(out, resolveReferences(v[start:i])...)
			out = append(out, v[i+1])
			i++
			start = i + 1
		}
	}
	return append(out, resolveReferences(v[start:])...)
}

func resolveReferences(v []byte) []byte {
	return util.ResolveEntityNames(util.ResolveNumericReferences(v))
}

// inlineText flattens a block's inline content to plain text, dropping
// emphasis, link and code markup.
func inlineText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			v := t.Segment.Value(src)
			if !t.IsRaw() {
				v = decodeText(v)
			}
			sb.Write(v)
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		case *ast.AutoLink:
			sb.Write(t.Label(src))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.List:
			if c != n {
				return ast.WalkSkipChildren, nil
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(sb.String()), " ")
}
