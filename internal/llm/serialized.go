package llm

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Serialized admits one Generate call at a time to a single loaded model
// instance. Waiting callers give up when their context ends.
type Serialized struct {
	model TextModel
	sem   *semaphore.Weighted
}

// Serialize wraps model so concurrent cards share it safely
func Serialize(model TextModel) *Serialized {
	if s, ok := model.(*Serialized); ok {
		return s
	}
	return &Serialized{model: model, sem: semaphore.NewWeighted(1)}
}

// Generate waits for the model to be free, then calls it
func (s *Serialized) Generate(ctx context.Context, instruction, text string) (string, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		failure := Classify(err)
		failure.Message = "waiting for model"
		return "", failure
	}
	defer s.sem.Release(1)

	return s.model.Generate(ctx, instruction, text)
}
