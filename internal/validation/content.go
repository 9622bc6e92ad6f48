package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cardforge/internal/schemas"
	"github.com/jonathan/cardforge/internal/types"
)

// Violation types
const (
	TypeLineTooLong       = "line_too_long"
	TypeTooManyLines      = "too_many_lines"
	TypeEmptyLine         = "empty_line"
	TypeMisplacedEllipsis = "misplaced_ellipsis"
	TypeMissingEllipsis   = "missing_ellipsis"
)

// Severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// danglingSuffixes are line endings left behind by a cut made without the
// ellipsis marker
var danglingSuffixes = []string{",", ";", ":", "-", "–", "—", "/", "&", "("}

// CheckContent returns every constraint the content breaks under budget.
// Over-long lines and over-full sections are errors; lines that look cut off
// or carry a stray ellipsis are warnings.
func CheckContent(content *types.CardContent, budget types.LayoutBudget) []types.Violation {
	if content == nil {
		return nil
	}

	var violations []types.Violation
	for _, s := range content.Sections {
		header := s.Header()

		if len(s.Lines) > budget.MaxLinesPerSection {
			violations = append(violations, types.Violation{
				Type:     TypeTooManyLines,
				Severity: SeverityError,
				Details:  fmt.Sprintf("Section %q has %d lines, maximum is %d", header, len(s.Lines), budget.MaxLinesPerSection),
				Section:  header,
			})
		}

		for i, line := range s.Lines {
			violations = append(violations, checkLine(header, i, line, budget)...)
		}
	}
	return violations
}

func checkLine(header string, index int, line string, budget types.LayoutBudget) []types.Violation {
	var violations []types.Violation
	chars := utf8.RuneCountInString(line)
	trimmed := strings.TrimSpace(line)

	if trimmed == "" {
		return []types.Violation{{
			Type:      TypeEmptyLine,
			Severity:  SeverityWarning,
			Details:   fmt.Sprintf("Line %d of %q is empty", index+1, header),
			Section:   header,
			LineIndex: intPtr(index),
		}}
	}

	if chars > budget.MaxCharsPerLine {
		violations = append(violations, types.Violation{
			Type:      TypeLineTooLong,
			Severity:  SeverityError,
			Details:   fmt.Sprintf("Line %d of %q has %d characters, maximum is %d", index+1, header, chars, budget.MaxCharsPerLine),
			Section:   header,
			LineIndex: intPtr(index),
			CharCount: intPtr(chars),
			LineText:  line,
		})
	}

	if idx := strings.Index(trimmed, types.EllipsisMarker); idx >= 0 && idx != len(trimmed)-len(types.EllipsisMarker) {
		violations = append(violations, types.Violation{
			Type:      TypeMisplacedEllipsis,
			Severity:  SeverityWarning,
			Details:   fmt.Sprintf("Line %d of %q has an ellipsis before its end", index+1, header),
			Section:   header,
			LineIndex: intPtr(index),
			LineText:  line,
		})
	}

	for _, suffix := range danglingSuffixes {
		if strings.HasSuffix(trimmed, suffix) {
			violations = append(violations, types.Violation{
				Type:      TypeMissingEllipsis,
				Severity:  SeverityWarning,
				Details:   fmt.Sprintf("Line %d of %q ends with %q and looks truncated", index+1, header, suffix),
				Section:   header,
				LineIndex: intPtr(index),
				LineText:  line,
			})
			break
		}
	}

	return violations
}

// HasErrors reports whether any violation has error severity
func HasErrors(violations []types.Violation) bool {
	for _, v := range violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CheckContentFile loads a card content JSON file, validates it against the
// card content schema and checks it against its own recorded budget.
func CheckContentFile(path string) (*types.Violations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}

	if err := schemas.ValidateCardContent(data); err != nil {
		return nil, &ContentError{Path: path, Message: "does not match schema", Cause: err}
	}

	var content types.CardContent
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, &ContentError{Path: path, Message: "failed to decode", Cause: err}
	}
	if err := content.Budget.Validate(); err != nil {
		return nil, &ContentError{Path: path, Message: "records an invalid budget", Cause: err}
	}

	violations := CheckContent(&content, content.Budget)
	if violations == nil {
		violations = []types.Violation{}
	}
	return &types.Violations{Violations: violations}, nil
}

func intPtr(i int) *int {
	return &i
}
