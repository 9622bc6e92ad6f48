// Package steps provides step definitions and dependency validation for the
// card pipeline.
package steps

import (
	"fmt"
	"sort"
)

// Step names
const (
	StepParse     = "parse_profile"
	StepSummarize = "summarize_content"
	StepCheck     = "check_content"
	StepCompose   = "compose_card"
	StepExport    = "export_pdf"
)

// Step categories
const (
	CategoryParsing     = "parsing"
	CategorySummarizing = "summarizing"
	CategoryRendering   = "rendering"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
	Optional     []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	StepParse: {
		Name:         StepParse,
		Category:     CategoryParsing,
		Dependencies: []string{},
		Optional:     []string{},
	},
	StepSummarize: {
		Name:         StepSummarize,
		Category:     CategorySummarizing,
		Dependencies: []string{StepParse},
		Optional:     []string{},
	},
	StepCheck: {
		Name:         StepCheck,
		Category:     CategorySummarizing,
		Dependencies: []string{StepSummarize},
		Optional:     []string{},
	},
	StepCompose: {
		Name:         StepCompose,
		Category:     CategoryRendering,
		Dependencies: []string{StepParse, StepSummarize},
		Optional:     []string{StepCheck},
	},
	StepExport: {
		Name:         StepExport,
		Category:     CategoryRendering,
		Dependencies: []string{StepCompose},
		Optional:     []string{},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s: missing dependencies: %v", e.Step, e.MissingDependencies)
}

// ValidateDependencies checks if all required dependencies for a step are completed
func ValidateDependencies(completed map[string]bool, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}

	return nil
}

// Tracker records the steps a single run has completed. It is not safe
// for concurrent use; each run owns one.
type Tracker struct {
	completed map[string]bool
	order     []string
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{completed: map[string]bool{}}
}

// Begin fails when stepName cannot run yet
func (t *Tracker) Begin(stepName string) error {
	if t.completed[stepName] {
		return fmt.Errorf("step %s already completed", stepName)
	}
	return ValidateDependencies(t.completed, stepName)
}

// Complete marks stepName done
func (t *Tracker) Complete(stepName string) {
	if t.completed[stepName] {
		return
	}
	t.completed[stepName] = true
	t.order = append(t.order, stepName)
}

// Completed returns the completed steps in completion order
func (t *Tracker) Completed() []string {
	return append([]string(nil), t.order...)
}

// GetAvailableSteps returns steps that can be executed (dependencies met),
// sorted by name
func (t *Tracker) GetAvailableSteps() []string {
	var available []string
	for stepName := range StepRegistry {
		if t.completed[stepName] {
			continue
		}
		if err := ValidateDependencies(t.completed, stepName); err != nil {
			continue
		}
		available = append(available, stepName)
	}
	sort.Strings(available)
	return available
}
