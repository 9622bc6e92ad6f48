// Package prompts provides a loader for externalized model instructions.
// Instructions are stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jonathan/cardforge/internal/types"
)

// SummarizeFile holds one instruction per section kind
const SummarizeFile = "summarize.json"

//go:embed *.json
var promptFiles embed.FS

var parsed sync.Map // filename -> map[string]string

// Get retrieves a prompt by filename and key.
// The filename should not include the path (e.g., "summarize.json").
func Get(filename, key string) (string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	prompt, exists := prompts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}

	return prompt, nil
}

// Format replaces placeholders in the form {{.Key}} with values from data.
// Unknown placeholders are left in place.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// SectionInstruction builds the instruction for summarizing one section group.
// Other sections get the generic instruction, titled with their heading.
func SectionInstruction(kind types.SectionKind, heading string, budget types.LayoutBudget) (string, error) {
	template, err := Get(SummarizeFile, kind.String())
	if err != nil {
		return "", err
	}
	if heading == "" {
		heading = kind.Label()
	}
	return Format(template, map[string]string{
		"MaxLines": strconv.Itoa(budget.MaxLinesPerSection),
		"MaxChars": strconv.Itoa(budget.MaxCharsPerLine),
		"Heading":  heading,
	}), nil
}

// loadFile parses an embedded prompt file once
func loadFile(filename string) (map[string]string, error) {
	if prompts, ok := parsed.Load(filename); ok {
		return prompts.(map[string]string), nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	actual, _ := parsed.LoadOrStore(filename, prompts)
	return actual.(map[string]string), nil
}
