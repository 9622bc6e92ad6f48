package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cardforge/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check CardContent JSON against its layout budget",
	Long:  "Check a CardContent JSON file against the schema and the line and character caps recorded in its budget.",
	RunE:  runValidate,
}

var validateContent string

func init() {
	validateCmd.Flags().StringVarP(&validateContent, "content", "c", "", "Path to CardContent JSON (required)")
	_ = validateCmd.MarkFlagRequired("content")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	violations, err := validation.CheckContentFile(validateContent)
	if err != nil {
		return err
	}

	printer().PrintViolations(violations)
	if validation.HasErrors(violations.Violations) {
		return fmt.Errorf("card content has %d violations", len(violations.Violations))
	}
	_, _ = fmt.Fprintln(os.Stdout, "Card content is within budget")
	return nil
}
