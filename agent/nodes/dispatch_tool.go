package nodes

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
	toolx "github.com/panuwat-dev/storefront-agent/agent/tool"
)

// DispatchTool executes the decided tool against the data snapshots. The
// parameters are validated again here: dispatch never trusts that the router
// already did it. Handler failures are recorded for the fallback path; an
// FAQ miss is flagged separately because it has its own fixed answer.
func DispatchTool(ctx context.Context, st *GraphState, registry *toolx.Registry, src toolx.Sources) (*GraphState, error) {
	if st == nil {
		return nil, fmt.Errorf("dispatch tool: graph state is nil")
	}
	if st.Routing != nil {
		return st, nil
	}

	spec, err := registry.Lookup(st.Decision.Tool)
	if err != nil {
		st.HandlerErr = err
		return st, nil
	}
	if err := registry.Validate(st.Decision.Tool, st.Decision.Params); err != nil {
		st.HandlerErr = fmt.Errorf("%w: pre-dispatch validation: %w", contractx.ErrHandler, err)
		return st, nil
	}

	out, err := spec.Handler(ctx, st.Decision.Params, src)
	if err != nil {
		if errors.Is(err, contractx.ErrNoMatch) {
			st.FaqMiss = true
			return st, nil
		}
		st.HandlerErr = err
		return st, nil
	}

	st.Output = out
	return st, nil
}
