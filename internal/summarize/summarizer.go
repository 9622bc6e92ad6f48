// Package summarize condenses a parsed profile into card-ready lines.
//
// Every section group goes through the text model when one is configured and
// falls back to a deterministic policy when the model fails, times out or
// returns unusable output. Summarize never returns an error.
package summarize

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/cardforge/internal/llm"
	"github.com/jonathan/cardforge/internal/prompts"
	"github.com/jonathan/cardforge/internal/types"
)

// DefaultTimeout bounds a single model call
const DefaultTimeout = 30 * time.Second

// Options configures the summarizer
type Options struct {
	// Timeout bounds each model call. Zero means DefaultTimeout.
	Timeout time.Duration
	// MaxRetries is the number of extra attempts after a transient failure,
	// clamped to [0, 1].
	MaxRetries int
	Logger     *zap.Logger
}

// DefaultOptions returns a 30s timeout and one retry
func DefaultOptions() Options {
	return Options{Timeout: DefaultTimeout, MaxRetries: 1}
}

// Summarizer turns Profiles into CardContent
type Summarizer struct {
	timeout    time.Duration
	maxRetries int
	logger     *zap.Logger
}

// New creates a Summarizer from options
func New(opts Options) *Summarizer {
	s := &Summarizer{
		timeout:    opts.Timeout,
		maxRetries: clamp(opts.MaxRetries, 0, 1),
		logger:     opts.Logger,
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Summarize runs the default summarizer
func Summarize(ctx context.Context, profile *types.Profile, budget types.LayoutBudget, model llm.TextModel) *types.CardContent {
	return New(DefaultOptions()).Summarize(ctx, profile, budget, model)
}

// Summarize condenses every section group of profile within budget.
// A nil model passes items through verbatim under the same caps.
//
// The budget is first clamped to 1..20 lines and 8..400 characters per line;
// the caps every line honors are the clamped ones, reported in the returned
// CardContent.Budget.
func (s *Summarizer) Summarize(ctx context.Context, profile *types.Profile, budget types.LayoutBudget, model llm.TextModel) *types.CardContent {
	requested := budget
	budget = clampBudget(budget)
	if budget != requested {
		s.logger.Warn("layout budget clamped",
			zap.Int("max_lines_per_section", budget.MaxLinesPerSection),
			zap.Int("max_chars_per_line", budget.MaxCharsPerLine))
	}
	content := &types.CardContent{
		Budget:   budget,
		Sections: []types.SectionSummary{},
	}

	for _, g := range groupSections(profile) {
		summary := types.SectionSummary{Kind: g.kind, Heading: g.heading}

		if model == nil {
			summary.Lines = Fallback(g.items, budget)
			summary.Source = types.SourceVerbatim
		} else if lines, failure := s.summarizeGroup(ctx, g, budget, model); failure == nil {
			summary.Lines = lines
			summary.Source = types.SourceModel
		} else {
			s.logger.Warn("section fell back to deterministic summary",
				zap.String("section", g.label()),
				zap.String("reason", string(failure.Reason)),
				zap.Int("attempt", failure.Attempt),
				zap.Error(failure))
			summary.Lines = Fallback(g.items, budget)
			summary.Source = types.SourceFallback
			summary.Degradation = string(failure.Reason)
		}

		if len(summary.Lines) == 0 {
			continue
		}
		content.Sections = append(content.Sections, summary)
	}

	return content
}

// summarizeGroup runs the model with at most maxRetries retries on transient failure
func (s *Summarizer) summarizeGroup(ctx context.Context, g group, budget types.LayoutBudget, model llm.TextModel) ([]string, *llm.InferenceFailure) {
	instruction, err := prompts.SectionInstruction(g.kind, g.heading, budget)
	if err != nil {
		return nil, &llm.InferenceFailure{Reason: llm.ReasonModelError, Message: "no instruction", Cause: err}
	}
	text := strings.Join(g.items, "\n")

	attempts := 1 + s.maxRetries
	for attempt := 1; ; attempt++ {
		raw, err := s.generate(ctx, model, instruction, text)
		if err != nil {
			failure := *llm.Classify(err)
			failure.Attempt = attempt
			if attempt >= attempts || !failure.Transient() || ctx.Err() != nil {
				return nil, &failure
			}
			s.logger.Debug("retrying model call",
				zap.String("section", g.label()),
				zap.String("reason", string(failure.Reason)),
				zap.Int("attempt", attempt))
			continue
		}

		lines, failure := PostProcess(raw, budget)
		if failure != nil {
			failure.Attempt = attempt
			return nil, failure
		}
		return lines, nil
	}
}

type generateResult struct {
	text string
	err  error
}

// generate makes one model call under a hard timeout. A model that ignores
// its context is abandoned when the timeout fires.
func (s *Summarizer) generate(ctx context.Context, model llm.TextModel, instruction, text string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resultCh := make(chan generateResult, 1)
	go func() {
		out, err := model.Generate(callCtx, instruction, text)
		resultCh <- generateResult{text: out, err: err}
	}()

	select {
	case res := <-resultCh:
		return res.text, res.err
	case <-callCtx.Done():
		return "", callCtx.Err()
	}
}

// group is the unit of summarization: all sections of one known kind, or
// all Other sections sharing a heading
type group struct {
	kind    types.SectionKind
	heading string
	items   []string
}

func (g group) label() string {
	if g.kind == types.KindOther && g.heading != "" {
		return g.heading
	}
	return g.kind.String()
}

// groupSections merges sections into groups in canonical card order
func groupSections(profile *types.Profile) []group {
	if profile == nil {
		return nil
	}

	known := make(map[types.SectionKind]*group)
	var others []*group
	otherIndex := make(map[string]*group)

	for _, sec := range profile.Sections {
		if sec.Kind != types.KindOther {
			g, ok := known[sec.Kind]
			if !ok {
				g = &group{kind: sec.Kind, heading: sec.Heading}
				known[sec.Kind] = g
			}
			g.items = append(g.items, sec.Items...)
			continue
		}

		key := strings.ToLower(strings.TrimSpace(sec.Heading))
		g, ok := otherIndex[key]
		if !ok {
			g = &group{kind: types.KindOther, heading: sec.Heading}
			otherIndex[key] = g
			others = append(others, g)
		}
		g.items = append(g.items, sec.Items...)
	}

	var groups []group
	for _, kind := range types.CanonicalKinds {
		if g, ok := known[kind]; ok {
			groups = append(groups, *g)
		}
	}
	for _, g := range others {
		groups = append(groups, *g)
	}
	return groups
}
