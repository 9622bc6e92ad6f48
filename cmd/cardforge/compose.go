package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cardforge/internal/parsing"
	"github.com/jonathan/cardforge/internal/rendering"
	"github.com/jonathan/cardforge/internal/schemas"
	"github.com/jonathan/cardforge/internal/types"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Draw a card from a profile, CardContent JSON and a photo",
	Long:  "Draw a card from a markdown profile (for the title bar), a CardContent JSON produced by summarize, and a photo.",
	RunE:  runCompose,
}

var (
	composeMarkdown string
	composeContent  string
	composePhoto    string
	composeOutput   string
)

func init() {
	composeCmd.Flags().StringVarP(&composeMarkdown, "markdown", "m", "", "Path to markdown profile (required)")
	composeCmd.Flags().StringVarP(&composeContent, "content", "c", "", "Path to CardContent JSON (required)")
	composeCmd.Flags().StringVarP(&composePhoto, "image", "i", "", "Path to PNG or JPEG photo (required)")
	composeCmd.Flags().StringVarP(&composeOutput, "out", "o", "card.png", "Path to output PNG")
	_ = composeCmd.MarkFlagRequired("markdown")
	_ = composeCmd.MarkFlagRequired("content")
	_ = composeCmd.MarkFlagRequired("image")

	rootCmd.AddCommand(composeCmd)
}

func runCompose(_ *cobra.Command, _ []string) error {
	profile, err := parsing.ParseFile(composeMarkdown)
	if err != nil {
		return fmt.Errorf("failed to parse profile: %w", err)
	}

	content, err := readCardContent(composeContent)
	if err != nil {
		return err
	}

	photo, err := loadPhoto(composePhoto)
	if err != nil {
		return fmt.Errorf("card composition failed: %w", err)
	}

	spec, err := renderSpec(settings)
	if err != nil {
		return err
	}
	composer := rendering.NewComposer(rendering.DefaultTheme(), logger)
	card, plan, err := composer.ComposeWithPlan(profile, content, photo, spec)
	if err != nil {
		return fmt.Errorf("card composition failed: %w", err)
	}

	if settings.Verbose {
		printer().PrintLayout(plan.Drawn, plan.Dropped, plan.TrimmedBullets)
	}
	if err := writePNG(composeOutput, card); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Composed %dx%d card with %d sections\n", spec.Width, spec.Height, len(plan.Drawn))
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", composeOutput)
	return nil
}

// readCardContent loads and schema-checks a CardContent JSON file
func readCardContent(path string) (*types.CardContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read card content: %w", err)
	}
	if err := schemas.ValidateCardContent(data); err != nil {
		return nil, fmt.Errorf("card content does not validate against schema: %w", err)
	}
	var content types.CardContent
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal card content: %w", err)
	}
	return &content, nil
}
