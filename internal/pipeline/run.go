// Package pipeline provides the high-level orchestration for card generation.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/cardforge/internal/llm"
	"github.com/jonathan/cardforge/internal/observability"
	"github.com/jonathan/cardforge/internal/parsing"
	"github.com/jonathan/cardforge/internal/pipeline/steps"
	"github.com/jonathan/cardforge/internal/rendering"
	"github.com/jonathan/cardforge/internal/summarize"
	"github.com/jonathan/cardforge/internal/types"
	"github.com/jonathan/cardforge/internal/validation"
)

// DefaultExportTimeout bounds a single PDF export
const DefaultExportTimeout = 60 * time.Second

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. During a batch
// it is called from several goroutines.
type ProgressCallback func(event ProgressEvent)

// Input is one card to generate
type Input struct {
	Name         string // Label used in logs and batch results
	Markdown     string // Profile document; read from MarkdownPath when empty
	MarkdownPath string
	Photo        image.Image // Decoded from PhotoPath when nil
	PhotoPath    string
}

// Options holds configuration for running the pipeline
type Options struct {
	Width  int // Canvas width; zero means rendering.DefaultWidth
	Height int // Canvas height; zero means rendering.DefaultHeight

	// Budget caps the summarizer. Nil derives it from the text region.
	Budget *types.LayoutBudget

	// Model is the text model; nil passes items through verbatim
	Model      llm.TextModel
	Summarizer summarize.Options

	Theme *rendering.Theme // Nil uses rendering.DefaultTheme

	PDF      bool
	Page     rendering.PageSpec    // Zero value means A4 landscape
	Exporter rendering.PDFExporter // Nil uses headless Chrome

	Logger     *zap.Logger
	Printer    *observability.Printer // Verbose output; nil prints nothing
	OnProgress ProgressCallback
}

// Result holds everything one run produced
type Result struct {
	RunID      uuid.UUID
	Profile    *types.Profile
	Content    *types.CardContent
	Violations []types.Violation
	Layout     rendering.TextPlan
	Card       *image.RGBA
	PDF        []byte
	PDFError   error // Set when export failed; Card is still valid
	Steps      []string
}

type run struct {
	id      uuid.UUID
	opts    *Options
	logger  *zap.Logger
	tracker *steps.Tracker
}

// emitProgress calls the progress callback if configured
func (r *run) emitProgress(step, message string, content any) {
	if r.opts.OnProgress == nil {
		return
	}
	r.opts.OnProgress(ProgressEvent{
		Step:     step,
		Category: steps.StepRegistry[step].Category,
		Message:  message,
		RunID:    r.id.String(),
		Content:  content,
	})
}

// step runs fn once its dependencies have completed
func (r *run) step(name string, fn func() error) error {
	if err := r.tracker.Begin(name); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	r.tracker.Complete(name)
	return nil
}

// Run parses, summarizes and composes one card. ParseError and LayoutError
// are returned wrapped; model failures and PDF export failures are not
// errors.
func Run(ctx context.Context, in Input, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &run{
		id:      uuid.New(),
		opts:    &opts,
		tracker: steps.NewTracker(),
	}
	fields := []zap.Field{zap.String("run_id", r.id.String())}
	if in.Name != "" {
		fields = append(fields, zap.String("card", in.Name))
	}
	r.logger = logger.With(fields...)

	result := &Result{RunID: r.id}

	width, height := opts.Width, opts.Height
	if width == 0 {
		width = rendering.DefaultWidth
	}
	if height == 0 {
		height = rendering.DefaultHeight
	}
	spec, err := rendering.NewRenderSpec(width, height)
	if err != nil {
		return nil, fmt.Errorf("invalid canvas: %w", err)
	}

	document, err := loadDocument(in)
	if err != nil {
		return nil, err
	}

	// Step 1: Parse the profile document
	err = r.step(steps.StepParse, func() error {
		profile, err := parsing.Parse(document)
		if err != nil {
			return fmt.Errorf("profile parsing failed: %w", err)
		}
		result.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	if opts.Printer != nil {
		opts.Printer.PrintProfile(result.Profile)
	}
	r.emitProgress(steps.StepParse,
		fmt.Sprintf("Parsed profile for %s with %d sections", result.Profile.Name, len(result.Profile.Sections)), result.Profile)

	// The photo is decoded before any model call so a bad photo fails fast
	photo, err := loadPhoto(in)
	if err != nil {
		return nil, err
	}

	// Step 2: Summarize with fallback
	budget := rendering.BudgetFor(spec)
	if opts.Budget != nil {
		budget = *opts.Budget
	}
	_ = r.step(steps.StepSummarize, func() error {
		summarizerOpts := opts.Summarizer
		summarizerOpts.Logger = r.logger
		result.Content = summarize.New(summarizerOpts).Summarize(ctx, result.Profile, budget, opts.Model)
		return nil
	})
	if opts.Printer != nil {
		opts.Printer.PrintCardContent(result.Content)
	}
	r.emitProgress(steps.StepSummarize, summaryMessage(result.Content), result.Content)

	// Step 3: Check content caps
	_ = r.step(steps.StepCheck, func() error {
		result.Violations = validation.CheckContent(result.Content, result.Content.Budget)
		return nil
	})
	for _, v := range result.Violations {
		r.logger.Warn("card content violation",
			zap.String("type", v.Type),
			zap.String("severity", v.Severity),
			zap.String("section", v.Section),
			zap.String("details", v.Details))
	}
	if opts.Printer != nil {
		opts.Printer.PrintViolations(&types.Violations{Violations: result.Violations})
	}
	r.emitProgress(steps.StepCheck, fmt.Sprintf("Found %d content violations", len(result.Violations)), nil)

	// Step 4: Compose the raster card
	theme := rendering.DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	composer := rendering.NewComposer(theme, r.logger)
	err = r.step(steps.StepCompose, func() error {
		card, plan, err := composer.ComposeWithPlan(result.Profile, result.Content, photo, spec)
		if err != nil {
			return fmt.Errorf("card composition failed: %w", err)
		}
		result.Card = card
		result.Layout = plan
		return nil
	})
	if err != nil {
		return nil, err
	}
	if opts.Printer != nil {
		opts.Printer.PrintLayout(result.Layout.Drawn, result.Layout.Dropped, result.Layout.TrimmedBullets)
	}
	r.emitProgress(steps.StepCompose,
		fmt.Sprintf("Composed %dx%d card with %d of %d sections", spec.Width, spec.Height,
			len(result.Layout.Drawn), len(result.Layout.Drawn)+len(result.Layout.Dropped)), nil)

	// Step 5: Optional paginated export
	if opts.PDF {
		_ = r.step(steps.StepExport, func() error {
			result.PDF, result.PDFError = r.export(ctx, composer, result, photo)
			return nil
		})
		if result.PDFError != nil {
			r.logger.Warn("PDF export skipped", zap.Error(result.PDFError))
			r.emitProgress(steps.StepExport, fmt.Sprintf("PDF export failed: %v", result.PDFError), nil)
		} else {
			r.emitProgress(steps.StepExport, fmt.Sprintf("Exported %d byte PDF", len(result.PDF)), nil)
		}
	}

	result.Steps = r.tracker.Completed()
	r.logger.Info("card generated",
		zap.Int("sections_drawn", len(result.Layout.Drawn)),
		zap.Int("sections_dropped", len(result.Layout.Dropped)),
		zap.Bool("degraded", result.Content.Degraded()))
	return result, nil
}

// export draws the card again against the page canvas and prints it
func (r *run) export(ctx context.Context, composer *rendering.Composer, result *Result, photo image.Image) ([]byte, error) {
	page := r.opts.Page
	if page.WidthIn == 0 || page.HeightIn == 0 {
		page = rendering.A4Landscape
	}
	if page.DPI <= 0 {
		page.DPI = rendering.DefaultDPI
	}

	pageCard, err := composer.ComposePage(result.Profile, result.Content, photo, page)
	if err != nil {
		return nil, err
	}

	exporter := r.opts.Exporter
	if exporter == nil {
		exporter = rendering.NewChromePDFExporter(DefaultExportTimeout, r.logger)
	}
	return exporter.Export(ctx, []image.Image{pageCard}, page)
}

func loadDocument(in Input) (string, error) {
	if in.Markdown != "" || in.MarkdownPath == "" {
		return in.Markdown, nil
	}
	data, err := os.ReadFile(in.MarkdownPath)
	if err != nil {
		return "", fmt.Errorf("failed to read profile document %s: %w", in.MarkdownPath, err)
	}
	return string(data), nil
}

func loadPhoto(in Input) (image.Image, error) {
	if in.Photo != nil {
		return in.Photo, nil
	}
	if in.PhotoPath == "" {
		return nil, fmt.Errorf("card composition failed: %w",
			&rendering.LayoutError{Stage: rendering.StagePhoto, Message: "photo is missing"})
	}

	f, err := os.Open(in.PhotoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open photo %s: %w", in.PhotoPath, err)
	}
	defer func() { _ = f.Close() }()

	photo, err := rendering.DecodePhoto(f)
	if err != nil {
		return nil, fmt.Errorf("card composition failed: %s: %w", in.PhotoPath, err)
	}
	return photo, nil
}

func summaryMessage(content *types.CardContent) string {
	counts := map[types.ContentSource]int{}
	for _, s := range content.Sections {
		counts[s.Source]++
	}
	return fmt.Sprintf("Summarized %d sections (%d model, %d fallback, %d verbatim)",
		len(content.Sections), counts[types.SourceModel], counts[types.SourceFallback], counts[types.SourceVerbatim])
}
