package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cardforge/internal/parsing"
	"github.com/jonathan/cardforge/internal/rendering"
	"github.com/jonathan/cardforge/internal/schemas"
	"github.com/jonathan/cardforge/internal/summarize"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Condense a markdown profile into CardContent JSON",
	Long: `Parse a markdown profile and condense each section to the card's layout budget.

With --model the text model is asked first; any failure falls back to a
deterministic policy. Without a model, items are passed through verbatim.`,
	RunE: runSummarize,
}

var (
	summarizeMarkdown string
	summarizeOutput   string
	summarizeModel    string
)

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeMarkdown, "markdown", "m", "", "Path to markdown profile (required)")
	summarizeCmd.Flags().StringVarP(&summarizeOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	summarizeCmd.Flags().StringVar(&summarizeModel, "model", "", "Text model name (overrides config)")
	_ = summarizeCmd.MarkFlagRequired("markdown")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, _ []string) error {
	cfg := settings
	if cmd.Flags().Changed("model") {
		cfg.Model = summarizeModel
	}

	profile, err := parsing.ParseFile(summarizeMarkdown)
	if err != nil {
		return fmt.Errorf("failed to parse profile: %w", err)
	}

	model, err := newModel(cfg)
	if err != nil {
		return err
	}
	spec, err := renderSpec(cfg)
	if err != nil {
		return err
	}
	budget := rendering.BudgetFor(spec)
	if override := cfg.BudgetOverride(); override != nil {
		budget = *override
	}

	content := summarize.New(summarizerOptions(cfg)).Summarize(cmd.Context(), profile, budget, model)

	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := schemas.ValidateCardContent(data); err != nil {
		return fmt.Errorf("card content does not validate against schema: %w", err)
	}

	if cfg.Verbose {
		printer().PrintCardContent(content)
	}
	if err := writeJSON(summarizeOutput, content); err != nil {
		return err
	}
	if summarizeOutput != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Summarized %d sections (%d lines)\n", len(content.Sections), content.LineCount())
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", summarizeOutput)
	}
	return nil
}
