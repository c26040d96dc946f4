package tool

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cloudwego/eino/schema"
	catalogx "github.com/panuwat-dev/storefront-agent/agent/catalog"
	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
)

const ToolInventoryLookup = "inventory_lookup"

// InventorySpec declares the structured product lookup. The query parameter
// carries the original free-text question; the remaining parameters are the
// structured filters the classifier extracted from it.
func InventorySpec() Spec {
	return Spec{
		Name: ToolInventoryLookup,
		Desc: "Look up products by category, price range, stock level, and rating. " +
			"Use for questions about products, prices, availability, or ratings.",
		Params: map[string]Param{
			"query": {
				Type:     schema.String,
				Desc:     "The customer's original product question, verbatim.",
				Required: true,
			},
			"category":   {Type: schema.String, Desc: "Exact product category to match."},
			"min_price":  {Type: schema.Number, Desc: "Inclusive lower price bound."},
			"max_price":  {Type: schema.Number, Desc: "Inclusive upper price bound."},
			"min_stock":  {Type: schema.Integer, Desc: "Inclusive lower stock bound. Use 1 for in-stock."},
			"min_rating": {Type: schema.Number, Desc: "Inclusive lower rating bound, 0-5."},
			"max_rating": {Type: schema.Number, Desc: "Inclusive upper rating bound, 0-5."},
			"sort_key": {
				Type: schema.String,
				Desc: "Order results by this attribute.",
				Enum: []string{"price", "rating", "sales"},
			},
			"sort_order": {
				Type: schema.String,
				Desc: "Sort direction, defaults to ascending.",
				Enum: []string{"asc", "desc"},
			},
			"limit": {Type: schema.Integer, Desc: "Maximum number of products to return."},
		},
		Handler: runInventoryLookup,
	}
}

func runInventoryLookup(ctx context.Context, params map[string]any, src Sources) (contractx.ToolOutput, error) {
	if src.Catalog == nil {
		return contractx.ToolOutput{}, errors.New("inventory lookup: catalog source is not configured")
	}

	filterArgs := make(map[string]any, len(params))
	for key, val := range params {
		switch key {
		case "query", "sort_key", "sort_order", "limit":
		default:
			filterArgs[key] = val
		}
	}

	f, err := catalogx.ParseFilter(filterArgs)
	if err != nil {
		return contractx.ToolOutput{}, err
	}
	if key, ok := params["sort_key"].(string); ok {
		f.SortKey = catalogx.SortKey(key)
	}
	if order, ok := params["sort_order"].(string); ok {
		f.Descending = order == "desc"
	}
	if limit, err := intParam(params, "limit"); err == nil {
		f.Limit = limit
	}

	seq, err := src.Catalog.Query(f)
	if err != nil {
		return contractx.ToolOutput{}, err
	}

	return contractx.ToolOutput{
		Products: slices.Collect(seq),
		Summary:  describeFilter(f),
	}, nil
}

func intParam(params map[string]any, key string) (int, error) {
	switch v := params[key].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("parameter %s is not an integer", key)
	}
}

// describeFilter renders the applied constraints for the answer header, e.g.
// "category 'electronics', price below $100.00".
func describeFilter(f catalogx.Filter) string {
	var parts []string
	if f.Category != "" {
		parts = append(parts, fmt.Sprintf("category %q", f.Category))
	}
	switch {
	case f.MinPrice != nil && f.MaxPrice != nil:
		parts = append(parts, fmt.Sprintf("price between $%.2f and $%.2f", *f.MinPrice, *f.MaxPrice))
	case f.MinPrice != nil:
		parts = append(parts, fmt.Sprintf("price above $%.2f", *f.MinPrice))
	case f.MaxPrice != nil:
		parts = append(parts, fmt.Sprintf("price below $%.2f", *f.MaxPrice))
	}
	if f.MinStock != nil {
		if *f.MinStock == 1 {
			parts = append(parts, "in stock")
		} else {
			parts = append(parts, fmt.Sprintf("stock of at least %d", *f.MinStock))
		}
	}
	switch {
	case f.MinRating != nil && f.MaxRating != nil:
		parts = append(parts, fmt.Sprintf("rating between %.1f and %.1f", *f.MinRating, *f.MaxRating))
	case f.MinRating != nil:
		parts = append(parts, fmt.Sprintf("rating above %.1f", *f.MinRating))
	case f.MaxRating != nil:
		parts = append(parts, fmt.Sprintf("rating below %.1f", *f.MaxRating))
	}
	return strings.Join(parts, ", ")
}
