package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cardforge/internal/parsing"
	"github.com/jonathan/cardforge/internal/schemas"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a markdown profile into Profile JSON",
	Long:  "Parse a markdown profile into a structured Profile JSON that validates against the profile schema.",
	RunE:  runParse,
}

var (
	parseMarkdown string
	parseOutput   string
)

func init() {
	parseCmd.Flags().StringVarP(&parseMarkdown, "markdown", "m", "", "Path to markdown profile (required)")
	parseCmd.Flags().StringVarP(&parseOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	_ = parseCmd.MarkFlagRequired("markdown")

	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, _ []string) error {
	profile, err := parsing.ParseFile(parseMarkdown)
	if err != nil {
		return fmt.Errorf("failed to parse profile: %w", err)
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := schemas.ValidateProfile(data); err != nil {
		return fmt.Errorf("parsed profile does not validate against schema: %w", err)
	}

	if settings.Verbose {
		printer().PrintProfile(profile)
	}
	if err := writeJSON(parseOutput, profile); err != nil {
		return err
	}
	if parseOutput != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Successfully parsed profile with %d sections\n", len(profile.Sections))
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", parseOutput)
	}
	return nil
}
