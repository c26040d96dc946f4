package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
	toolx "github.com/panuwat-dev/storefront-agent/agent/tool"
)

const defaultTimeout = 15 * time.Second

// Router maps a free-text query onto exactly one validated tool invocation.
// It holds no cross-query state beyond the static registry: every Route call
// starts pending and ends with either a decision or a RoutingError.
type Router struct {
	registry   *toolx.Registry
	classifier contractx.Classifier
	timeout    time.Duration
}

type Option func(*Router)

// WithTimeout bounds the classifier call. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(r *Router) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func New(registry *toolx.Registry, classifier contractx.Classifier, opts ...Option) (*Router, error) {
	if registry == nil {
		return nil, errors.New("tool registry is required")
	}
	if classifier == nil {
		return nil, errors.New("classifier is required")
	}
	r := &Router{
		registry:   registry,
		classifier: classifier,
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Route asks the classifier for a tool proposal and validates it against the
// registry. A proposal that fails validation gets one retry with an explicit
// correction describing the rejection; a second failure yields a RoutingError
// rather than an unvalidated decision. An unknown tool name from the model is
// a validation failure and takes the same retry path.
func (r *Router) Route(ctx context.Context, query string) (contractx.RoutingDecision, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return contractx.RoutingDecision{}, &contractx.RoutingError{
			Reason: contractx.ReasonNoConfidentMatch,
			Err:    errors.New("query is empty"),
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	call, err := r.classifier.Classify(ctx, contractx.ClassifyRequest{Query: query})
	if err != nil {
		return contractx.RoutingDecision{}, classifyFailure(ctx, err)
	}

	verr := r.registry.Validate(call.Tool, call.Args)
	if verr == nil {
		return decision(call, 1.0), nil
	}

	log.Warn().
		Str("tool", call.Tool).
		Err(verr).
		Msg("classifier proposal rejected, retrying with correction")

	correction := fmt.Sprintf(
		"The previous tool selection was rejected: %v. Choose exactly one of the declared tools and supply every required parameter with its declared type.",
		verr,
	)
	call, err = r.classifier.Classify(ctx, contractx.ClassifyRequest{Query: query, Correction: correction})
	if err != nil {
		return contractx.RoutingDecision{}, classifyFailure(ctx, err)
	}
	if verr = r.registry.Validate(call.Tool, call.Args); verr != nil {
		return contractx.RoutingDecision{}, &contractx.RoutingError{
			Reason: contractx.ReasonExceededRetries,
			Err:    verr,
		}
	}
	return decision(call, 0.5), nil
}

func decision(call contractx.ToolRequest, confidence float64) contractx.RoutingDecision {
	params := call.Args
	if params == nil {
		params = map[string]any{}
	}
	return contractx.RoutingDecision{
		Tool:       call.Tool,
		Params:     params,
		Confidence: confidence,
	}
}

func classifyFailure(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &contractx.RoutingError{Reason: contractx.ReasonTimeout, Err: err}
	case errors.Is(err, contractx.ErrNoToolSelected):
		return &contractx.RoutingError{Reason: contractx.ReasonNoConfidentMatch, Err: err}
	default:
		return &contractx.RoutingError{Reason: contractx.ReasonModelUnavailable, Err: err}
	}
}
