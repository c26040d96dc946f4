// Package assistant is the public entry point: it composes routing, dispatch,
// and answer formatting into one Answer call.
package assistant

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
	nodex "github.com/panuwat-dev/storefront-agent/agent/nodes"
	routerx "github.com/panuwat-dev/storefront-agent/agent/router"
	toolx "github.com/panuwat-dev/storefront-agent/agent/tool"
)

type Assistant struct {
	router   *routerx.Router
	registry *toolx.Registry
	sources  toolx.Sources

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]
}

func New(router *routerx.Router, registry *toolx.Registry, sources toolx.Sources) (*Assistant, error) {
	if router == nil {
		return nil, errors.New("router is required")
	}
	if registry == nil {
		return nil, errors.New("tool registry is required")
	}
	if sources.Catalog == nil {
		return nil, errors.New("product catalog source is required")
	}
	if sources.Faq == nil {
		return nil, errors.New("faq index source is required")
	}

	a := &Assistant{
		router:   router,
		registry: registry,
		sources:  sources,
	}

	graphRunner, err := a.compileAnswerGraph(context.Background())
	if err != nil {
		return nil, err
	}
	a.graphRunner = graphRunner

	return a, nil
}

// Answer resolves one query to a formatted result. Calls are independent and
// stateless, so concurrent callers may share one Assistant. Unroutable
// queries and handler failures come back as fallback answers, never as
// errors; a non-nil error means a pipeline defect, and even then a usable
// fallback result is returned alongside it.
func (a *Assistant) Answer(ctx context.Context, query string) (contractx.AnswerResult, error) {
	queryID := uuid.NewString()
	log.Debug().Str("query_id", queryID).Msg("answering query")

	out, err := a.graphRunner.Invoke(ctx, nodex.GraphInput{
		QueryID: queryID,
		Query:   query,
	})
	if err != nil {
		log.Error().Str("query_id", queryID).Err(err).Msg("answer pipeline failed")
		return contractx.AnswerResult{
			Kind:    contractx.AnswerFallback,
			Message: nodex.FallbackHandler,
		}, err
	}
	return out.Answer, nil
}
