package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cardforge/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the full pipeline: parse, summarize and compose a card",
	Long: `Run the full pipeline for one card.

The profile is parsed, each section is condensed (with the text model when
one is configured), and the card is drawn to --out. With --pdf (or a pdf path
in the config file) the card is also printed to a paginated PDF; a failed
export is reported but does not fail the command.`,
	RunE: runGenerate,
}

var (
	generateMarkdown string
	generatePhoto    string
	generateOutput   string
	generatePDF      string
	generateModel    string
)

func init() {
	generateCmd.Flags().StringVarP(&generateMarkdown, "markdown", "m", "", "Path to markdown profile (required)")
	generateCmd.Flags().StringVarP(&generatePhoto, "image", "i", "", "Path to PNG or JPEG photo (required)")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "card.png", "Path to output PNG")
	generateCmd.Flags().StringVar(&generatePDF, "pdf", "", "Also export a paginated PDF to this path")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "Text model name (overrides config)")
	_ = generateCmd.MarkFlagRequired("markdown")
	_ = generateCmd.MarkFlagRequired("image")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg := settings
	if cmd.Flags().Changed("model") {
		cfg.Model = generateModel
	}
	if cmd.Flags().Changed("pdf") {
		cfg.PDF = generatePDF
	}

	opts, err := pipelineOptions(cfg, cfg.PDF != "")
	if err != nil {
		return err
	}

	result, err := pipeline.Run(cmd.Context(), pipeline.Input{
		MarkdownPath: generateMarkdown,
		PhotoPath:    generatePhoto,
	}, opts)
	if err != nil {
		return err
	}

	if err := writePNG(generateOutput, result.Card); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Card generated (run %s)\n", result.RunID)
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", generateOutput)

	if opts.PDF {
		if result.PDFError != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: PDF export failed: %v\n", result.PDFError)
			return nil
		}
		if err := writeFile(cfg.PDF, result.PDF); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "PDF: %s\n", cfg.PDF)
	}
	return nil
}
