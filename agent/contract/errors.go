package contract

import (
	"errors"
	"fmt"
)

// Validation failures. Always recovered locally by rejecting the specific
// call; wrapped with fmt.Errorf("%w: ...") to carry detail.
var (
	ErrDuplicateTool         = errors.New("tool already registered")
	ErrUnknownTool           = errors.New("unknown tool")
	ErrMissingParameter      = errors.New("missing required parameter")
	ErrInvalidParameterType  = errors.New("invalid parameter type")
	ErrInvalidParameterValue = errors.New("invalid parameter value")
	ErrInvalidRange          = errors.New("invalid numeric range")
	ErrUnknownFilterKey      = errors.New("unknown filter key")
)

// Handler-level failures. Recovered by the assistant into a fallback answer.
var (
	ErrHandler = errors.New("tool handler failed")
	ErrNoMatch = errors.New("no faq entry matched")
)

// Classifier failures.
var (
	ErrModelInvoke    = errors.New("model invoke failed")
	ErrNoToolSelected = errors.New("model selected no usable tool")
)

type RoutingReason string

const (
	ReasonTimeout          RoutingReason = "timeout"
	ReasonModelUnavailable RoutingReason = "model_unavailable"
	ReasonNoConfidentMatch RoutingReason = "no_confident_match"
	ReasonExceededRetries  RoutingReason = "exceeded_retries"
)

// RoutingError reports why a query could not be mapped to a tool invocation.
// The assistant turns it into a fallback answer; it is never fatal.
type RoutingError struct {
	Reason RoutingReason
	Err    error
}

func (e *RoutingError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("routing failed: %s", e.Reason)
	}
	return fmt.Sprintf("routing failed: %s: %v", e.Reason, e.Err)
}

func (e *RoutingError) Unwrap() error {
	return e.Err
}

// AsRoutingError unwraps err into a RoutingError if one is in the chain.
func AsRoutingError(err error) (*RoutingError, bool) {
	var re *RoutingError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// Degraded reports whether err means the language-model collaborator was
// unreachable, as opposed to reachable but unhelpful.
func (e *RoutingError) Degraded() bool {
	return e.Reason == ReasonTimeout || e.Reason == ReasonModelUnavailable
}
