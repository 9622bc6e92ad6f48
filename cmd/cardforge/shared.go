package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/jonathan/cardforge/internal/config"
	"github.com/jonathan/cardforge/internal/llm"
	"github.com/jonathan/cardforge/internal/observability"
	"github.com/jonathan/cardforge/internal/pipeline"
	"github.com/jonathan/cardforge/internal/rendering"
	"github.com/jonathan/cardforge/internal/summarize"
)

// newModel returns the configured text model, or nil when no model is named
func newModel(cfg config.Config) (llm.TextModel, error) {
	if cfg.Model == "" {
		return nil, nil
	}
	llmConfig := llm.DefaultConfig().WithModel(cfg.Model)
	if cfg.ModelEndpoint != "" {
		llmConfig = llmConfig.WithEndpoint(cfg.ModelEndpoint)
	}
	model, err := llm.NewClient(llmConfig)
	if err != nil {
		return nil, &config.Error{Message: "cannot use model", Cause: err}
	}
	return model, nil
}

// summarizerOptions builds summarizer options from settings
func summarizerOptions(cfg config.Config) summarize.Options {
	defaults := summarize.DefaultOptions()
	return summarize.Options{
		Timeout:    cfg.TimeoutDuration(defaults.Timeout),
		MaxRetries: cfg.RetryCount(defaults.MaxRetries),
		Logger:     logger,
	}
}

// pipelineOptions builds pipeline options from settings
func pipelineOptions(cfg config.Config, pdf bool) (pipeline.Options, error) {
	model, err := newModel(cfg)
	if err != nil {
		return pipeline.Options{}, err
	}
	page, err := rendering.PageSpecByName(cfg.PageSize, cfg.DPI)
	if err != nil {
		return pipeline.Options{}, &config.Error{Message: "invalid page size", Cause: err}
	}

	opts := pipeline.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Budget:     cfg.BudgetOverride(),
		Model:      model,
		Summarizer: summarizerOptions(cfg),
		PDF:        pdf,
		Page:       page,
		Logger:     logger,
	}
	if cfg.Verbose {
		opts.Printer = observability.NewPrinter(os.Stdout)
	}
	return opts, nil
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if path == "" {
		_, err := fmt.Fprintln(os.Stdout, string(data))
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// writePNG encodes img to path, creating parent directories
func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode card: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// writeFile writes data to path, creating parent directories
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// loadPhoto decodes the photo at path
func loadPhoto(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open photo: %w", err)
	}
	defer func() { _ = f.Close() }()
	return rendering.DecodePhoto(f)
}

// printer writes verbose output to stdout
func printer() *observability.Printer {
	return observability.NewPrinter(os.Stdout)
}

// renderSpec returns the card layout for the configured canvas
func renderSpec(cfg config.Config) (rendering.RenderSpec, error) {
	width, height := cfg.Width, cfg.Height
	if width == 0 {
		width = rendering.DefaultWidth
	}
	if height == 0 {
		height = rendering.DefaultHeight
	}
	spec, err := rendering.NewRenderSpec(width, height)
	if err != nil {
		return rendering.RenderSpec{}, &config.Error{Message: "invalid canvas", Cause: err}
	}
	return spec, nil
}
