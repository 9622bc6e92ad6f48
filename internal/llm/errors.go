package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// FailureReason classifies why an inference call produced no usable text
type FailureReason string

// Failure reasons
const (
	ReasonTimeout     FailureReason = "timeout"
	ReasonCanceled    FailureReason = "canceled"
	ReasonUnavailable FailureReason = "unavailable"
	ReasonServer      FailureReason = "server_error"
	ReasonBadResponse FailureReason = "bad_response"
	ReasonDegenerate  FailureReason = "degenerate_output"
	ReasonModelError  FailureReason = "model_error"
)

// InferenceFailure represents a model call that timed out, crashed, or
// returned output the summarizer cannot use
type InferenceFailure struct {
	Reason  FailureReason
	Attempt int
	Message string
	Cause   error
}

func (e *InferenceFailure) Error() string {
	msg := string(e.Reason)
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", e.Reason, e.Message)
	}
	if e.Attempt > 0 {
		msg = fmt.Sprintf("attempt %d: %s", e.Attempt, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("inference failure: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("inference failure: %s", msg)
}

func (e *InferenceFailure) Unwrap() error {
	return e.Cause
}

// Transient reports whether a retry may succeed
func (e *InferenceFailure) Transient() bool {
	switch e.Reason {
	case ReasonTimeout, ReasonUnavailable, ReasonServer, ReasonModelError:
		return true
	default:
		return false
	}
}

// Classify converts any model error into an *InferenceFailure
func Classify(err error) *InferenceFailure {
	if err == nil {
		return nil
	}

	var failure *InferenceFailure
	if errors.As(err, &failure) {
		return failure
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &InferenceFailure{Reason: ReasonTimeout, Cause: err}
	case errors.Is(err, context.Canceled):
		return &InferenceFailure{Reason: ReasonCanceled, Cause: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &InferenceFailure{Reason: ReasonTimeout, Cause: err}
		}
		return &InferenceFailure{Reason: ReasonUnavailable, Cause: err}
	}

	return &InferenceFailure{Reason: ReasonModelError, Cause: err}
}
