package nodes

import (
	"context"
	"fmt"

	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
	routerx "github.com/panuwat-dev/storefront-agent/agent/router"
)

// RouteQuery asks the router for a validated tool decision. Routing failures
// are captured in the state for the fallback path; any other error is a
// pipeline defect and aborts the graph.
func RouteQuery(ctx context.Context, st *GraphState, rt *routerx.Router) (*GraphState, error) {
	if st == nil {
		return nil, fmt.Errorf("route query: graph state is nil")
	}
	if st.Routing != nil {
		return st, nil
	}

	decision, err := rt.Route(ctx, st.Query)
	if err != nil {
		re, ok := contractx.AsRoutingError(err)
		if !ok {
			return nil, fmt.Errorf("route query: %w", err)
		}
		st.Routing = re
		return st, nil
	}

	st.Decision = decision
	return st, nil
}
