package nodes

import (
	"errors"
	"strings"

	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
)

// ValidateQuery normalizes the incoming query. An empty query is unroutable
// by definition and is recorded as a routing failure, not an error: the
// assistant never crashes on bad input.
func ValidateQuery(in GraphInput) (*GraphState, error) {
	st := &GraphState{
		QueryID: strings.TrimSpace(in.QueryID),
		Query:   strings.TrimSpace(in.Query),
	}
	if st.Query == "" {
		st.Routing = &contractx.RoutingError{
			Reason: contractx.ReasonNoConfidentMatch,
			Err:    errors.New("query is empty"),
		}
	}
	return st, nil
}
