package rendering

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"image"
	"image/png"
	"math"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/jonathan/cardforge/internal/types"
)

// PageSpec is a landscape paper size and the raster density cards are
// composed at for it
type PageSpec struct {
	Name     string
	WidthIn  float64
	HeightIn float64
	DPI      int
}

// DefaultDPI is the raster density of composed pages
const DefaultDPI = 150

// Supported page sizes, landscape
var (
	A4Landscape     = PageSpec{Name: "a4", WidthIn: 11.69, HeightIn: 8.27, DPI: DefaultDPI}
	LetterLandscape = PageSpec{Name: "letter", WidthIn: 11, HeightIn: 8.5, DPI: DefaultDPI}
)

// PageSpecByName returns the named page size at dpi; dpi <= 0 keeps the default
func PageSpecByName(name string, dpi int) (PageSpec, error) {
	var spec PageSpec
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "a4":
		spec = A4Landscape
	case "letter":
		spec = LetterLandscape
	default:
		return PageSpec{}, fmt.Errorf("unknown page size %q (expected a4 or letter)", name)
	}
	if dpi > 0 {
		spec.DPI = dpi
	}
	return spec, nil
}

// PixelSize returns the page size in pixels at the page's DPI
func (p PageSpec) PixelSize() (int, int) {
	return int(math.Round(p.WidthIn * float64(p.DPI))), int(math.Round(p.HeightIn * float64(p.DPI)))
}

// RenderSpec returns the card layout for a full page
func (p PageSpec) RenderSpec() (RenderSpec, error) {
	w, h := p.PixelSize()
	return NewRenderSpec(w, h)
}

// ComposePage draws the card against a page-sized canvas. The drawing is
// the same as Compose; only the canvas size differs.
func (c *Composer) ComposePage(profile *types.Profile, content *types.CardContent, photo image.Image, p PageSpec) (*image.RGBA, error) {
	spec, err := p.RenderSpec()
	if err != nil {
		return nil, err
	}
	return c.Compose(profile, content, photo, spec)
}

// PDFExporter writes composed pages to a paginated document
type PDFExporter interface {
	Export(ctx context.Context, pages []image.Image, p PageSpec) ([]byte, error)
}

// Compile-time interface check
var _ PDFExporter = (*ChromePDFExporter)(nil)

var pageTemplate = template.Must(template.New("pages").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
@page { size: {{.Width}}in {{.Height}}in; margin: 0; }
html, body { margin: 0; padding: 0; }
.page { width: {{.Width}}in; height: {{.Height}}in; page-break-after: always; overflow: hidden; }
.page:last-child { page-break-after: auto; }
.card { display: block; width: 100%; height: 100%; }
</style>
</head>
<body>
{{- range .Pages}}
<div class="page"><img class="card" alt="card" src="{{.}}"></div>
{{- end}}
</body>
</html>
`))

type pageData struct {
	Width  string
	Height string
	Pages  []template.URL
}

// BuildPageHTML embeds each page as a PNG data URL, one page per sheet
func BuildPageHTML(pages []image.Image, p PageSpec) (string, error) {
	if len(pages) == 0 {
		return "", &ExportError{Message: "no pages to export"}
	}

	data := pageData{
		Width:  formatInches(p.WidthIn),
		Height: formatInches(p.HeightIn),
	}
	for i, img := range pages {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return "", &ExportError{Message: fmt.Sprintf("failed to encode page %d", i+1), Cause: err}
		}
		data.Pages = append(data.Pages, template.URL("data:image/png;base64,"+base64.StdEncoding.EncodeToString(buf.Bytes())))
	}

	var out strings.Builder
	if err := pageTemplate.Execute(&out, data); err != nil {
		return "", &ExportError{Message: "failed to build page document", Cause: err}
	}
	return out.String(), nil
}

func formatInches(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

// ChromePDFExporter prints pages to PDF with headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type ChromePDFExporter struct {
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewChromePDFExporter creates an exporter with a per-document timeout
func NewChromePDFExporter(timeout time.Duration, logger *zap.Logger) *ChromePDFExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChromePDFExporter{Timeout: timeout, Logger: logger}
}

// Export renders pages to a PDF document with one page per card
func (e *ChromePDFExporter) Export(ctx context.Context, pages []image.Image, p PageSpec) ([]byte, error) {
	doc, err := BuildPageHTML(pages, p)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "cardforge-*.html")
	if err != nil {
		return nil, &ExportError{Message: "failed to create temp file", Cause: err}
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.WriteString(doc); err != nil {
		_ = tmp.Close()
		return nil, &ExportError{Message: "failed to write temp file", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return nil, &ExportError{Message: "failed to write temp file", Cause: err}
	}

	logger := e.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("starting headless browser for PDF export", zap.Int("pages", len(pages)), zap.String("page_size", p.Name))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if e.Timeout > 0 {
		browserCtx, cancel = context.WithTimeout(browserCtx, e.Timeout)
		defer cancel()
	}

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(p.WidthIn).
				WithPaperHeight(p.HeightIn).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return nil, &ExportError{Message: "headless browser failed to print PDF", Cause: err}
	}

	logger.Debug("PDF export complete", zap.Int("bytes", len(pdf)))
	return pdf, nil
}
