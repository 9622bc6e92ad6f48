package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/jonathan/cardforge/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate several cards from a YAML manifest",
	Long: `Generate every card listed in a YAML manifest:

  cards:
    - name: jane
      markdown: jane.md
      image: jane.jpg
      output: out/jane.png

Relative paths are resolved against the manifest's directory. A card without
an output is written as <run id>.png next to the manifest. A failing card
does not stop the others.`,
	RunE: runBatch,
}

var (
	batchManifest string
	batchWorkers  int
	batchModel    string
)

func init() {
	batchCmd.Flags().StringVar(&batchManifest, "manifest", "", "Path to YAML manifest (required)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Cards generated concurrently (overrides config)")
	batchCmd.Flags().StringVar(&batchModel, "model", "", "Text model name (overrides config)")
	_ = batchCmd.MarkFlagRequired("manifest")

	rootCmd.AddCommand(batchCmd)
}

// Manifest lists the cards of a batch
type Manifest struct {
	Cards []ManifestCard `yaml:"cards" validate:"required,min=1,dive"`
}

// ManifestCard is one card of a batch
type ManifestCard struct {
	Name     string `yaml:"name"`
	Markdown string `yaml:"markdown" validate:"required"`
	Image    string `yaml:"image" validate:"required"`
	Output   string `yaml:"output"`
}

// loadManifest reads a manifest and resolves its paths against its directory
func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := validator.New().Struct(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range m.Cards {
		card := &m.Cards[i]
		if card.Name == "" {
			card.Name = fmt.Sprintf("card-%d", i+1)
		}
		card.Markdown = resolve(dir, card.Markdown)
		card.Image = resolve(dir, card.Image)
		if card.Output != "" {
			card.Output = resolve(dir, card.Output)
		}
	}
	return &m, nil
}

func resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	cfg := settings
	if cmd.Flags().Changed("model") {
		cfg.Model = batchModel
	}
	workers := cfg.Workers
	if cmd.Flags().Changed("workers") {
		workers = batchWorkers
	}

	manifest, err := loadManifest(batchManifest)
	if err != nil {
		return err
	}

	opts, err := pipelineOptions(cfg, false)
	if err != nil {
		return err
	}
	// Verbose boxes from concurrent cards would interleave
	opts.Printer = nil

	inputs := make([]pipeline.Input, len(manifest.Cards))
	for i, card := range manifest.Cards {
		inputs[i] = pipeline.Input{
			Name:         card.Name,
			MarkdownPath: card.Markdown,
			PhotoPath:    card.Image,
		}
	}

	results := pipeline.RunBatch(cmd.Context(), inputs, opts, workers)

	dir := filepath.Dir(batchManifest)
	written := 0
	for i, r := range results {
		if r.Err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "FAILED %s: %v\n", r.Input.Name, r.Err)
			continue
		}
		out := manifest.Cards[i].Output
		if out == "" {
			out = filepath.Join(dir, r.Result.RunID.String()+".png")
		}
		if err := writePNG(out, r.Result.Card); err != nil {
			results[i].Err = err
			_, _ = fmt.Fprintf(os.Stderr, "FAILED %s: %v\n", r.Input.Name, err)
			continue
		}
		written++
		_, _ = fmt.Fprintf(os.Stdout, "OK %s: %s\n", r.Input.Name, out)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Generated %d of %d cards\n", written, len(results))
	if failed := pipeline.Failed(results); len(failed) > 0 {
		return fmt.Errorf("%d of %d cards failed", len(failed), len(results))
	}
	return nil
}
