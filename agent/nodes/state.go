// Package nodes holds the answer-pipeline node functions the assistant wires
// into its graph: validate the query, route it, dispatch the chosen tool, and
// format the final answer.
package nodes

import (
	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
)

type GraphInput struct {
	QueryID string
	Query   string
}

type GraphOutput struct {
	Answer contractx.AnswerResult
}

// GraphState flows through the pipeline. Routing and handler failures are
// recorded here instead of failing the graph, so the formatting node can
// always produce a fallback answer.
type GraphState struct {
	QueryID string
	Query   string

	Decision contractx.RoutingDecision
	Routing  *contractx.RoutingError

	Output     contractx.ToolOutput
	FaqMiss    bool
	HandlerErr error
}
