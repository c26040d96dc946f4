package catalog

import (
	"encoding/json"
	"fmt"
	"math"

	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
)

// ParseFilter converts an untyped filter mapping, as extracted from a query,
// into a Filter. Unknown keys and mistyped values are rejected; sort and limit
// controls are not filter keys and belong to the caller.
func ParseFilter(args map[string]any) (Filter, error) {
	var f Filter
	for key, raw := range args {
		var err error
		switch key {
		case "category":
			f.Category, err = stringArg(key, raw)
		case "min_price":
			f.MinPrice, err = floatArg(key, raw)
		case "max_price":
			f.MaxPrice, err = floatArg(key, raw)
		case "min_stock":
			f.MinStock, err = intArg(key, raw)
		case "min_rating":
			f.MinRating, err = floatArg(key, raw)
		case "max_rating":
			f.MaxRating, err = floatArg(key, raw)
		default:
			return Filter{}, fmt.Errorf("%w: %q", contractx.ErrUnknownFilterKey, key)
		}
		if err != nil {
			return Filter{}, err
		}
	}
	return f, nil
}

func stringArg(key string, raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s expects a string, got %T", contractx.ErrInvalidParameterType, key, raw)
	}
	return s, nil
}

func floatArg(key string, raw any) (*float64, error) {
	switch v := raw.(type) {
	case float64:
		return &v, nil
	case int:
		f := float64(v)
		return &f, nil
	case int64:
		f := float64(v)
		return &f, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", contractx.ErrInvalidParameterType, key, err)
		}
		return &f, nil
	default:
		return nil, fmt.Errorf("%w: %s expects a number, got %T", contractx.ErrInvalidParameterType, key, raw)
	}
}

func intArg(key string, raw any) (*int, error) {
	switch v := raw.(type) {
	case int:
		return &v, nil
	case int64:
		n := int(v)
		return &n, nil
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("%w: %s expects an integer, got %v", contractx.ErrInvalidParameterType, key, v)
		}
		n := int(v)
		return &n, nil
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects an integer: %v", contractx.ErrInvalidParameterType, key, err)
		}
		n := int(i)
		return &n, nil
	default:
		return nil, fmt.Errorf("%w: %s expects an integer, got %T", contractx.ErrInvalidParameterType, key, raw)
	}
}
