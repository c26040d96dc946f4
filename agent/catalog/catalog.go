package catalog

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync/atomic"

	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
)

type SortKey string

const (
	SortNone   SortKey = ""
	SortPrice  SortKey = "price"
	SortRating SortKey = "rating"
	SortSales  SortKey = "sales"
)

// Filter is a conjunction of product predicates. Nil bounds mean the bound is
// not supplied; all supplied predicates must hold (logical AND).
type Filter struct {
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	MinStock  *int
	MinRating *float64
	MaxRating *float64

	SortKey    SortKey
	Descending bool
	Limit      int // 0 means no limit
}

// Catalog is an immutable product snapshot behind an atomic pointer. Reload
// swaps the whole snapshot; in-flight queries keep the one they started with,
// so no locking is needed.
type Catalog struct {
	snap atomic.Pointer[snapshot]
}

type snapshot struct {
	products []contractx.Product
}

func New(products []contractx.Product) *Catalog {
	c := &Catalog{}
	c.Reload(products)
	return c
}

func (c *Catalog) Reload(products []contractx.Product) {
	c.snap.Store(&snapshot{products: slices.Clone(products)})
}

func (c *Catalog) Len() int {
	return len(c.snap.Load().products)
}

// Query evaluates the filter in a single pass over the snapshot and returns a
// restartable sequence of matching products in catalog insertion order. A sort
// key reorders the matches with insertion order breaking ties. Invalid ranges
// are rejected before any scan happens.
func (c *Catalog) Query(f Filter) (iter.Seq[contractx.Product], error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	snap := c.snap.Load()
	if f.SortKey == SortNone {
		return func(yield func(contractx.Product) bool) {
			emitted := 0
			for _, p := range snap.products {
				if !f.matches(p) {
					continue
				}
				if f.Limit > 0 && emitted >= f.Limit {
					return
				}
				if !yield(p) {
					return
				}
				emitted++
			}
		}, nil
	}

	return func(yield func(contractx.Product) bool) {
		var matched []contractx.Product
		for _, p := range snap.products {
			if f.matches(p) {
				matched = append(matched, p)
			}
		}
		slices.SortStableFunc(matched, f.compare)
		if f.Limit > 0 && len(matched) > f.Limit {
			matched = matched[:f.Limit]
		}
		for _, p := range matched {
			if !yield(p) {
				return
			}
		}
	}, nil
}

func (f Filter) validate() error {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return fmt.Errorf("%w: min_price %.2f exceeds max_price %.2f", contractx.ErrInvalidRange, *f.MinPrice, *f.MaxPrice)
	}
	if f.MinRating != nil && f.MaxRating != nil && *f.MinRating > *f.MaxRating {
		return fmt.Errorf("%w: min_rating %.2f exceeds max_rating %.2f", contractx.ErrInvalidRange, *f.MinRating, *f.MaxRating)
	}
	switch f.SortKey {
	case SortNone, SortPrice, SortRating, SortSales:
	default:
		return fmt.Errorf("%w: sort key %q", contractx.ErrInvalidParameterValue, f.SortKey)
	}
	if f.Limit < 0 {
		return fmt.Errorf("%w: limit %d is negative", contractx.ErrInvalidParameterValue, f.Limit)
	}
	return nil
}

func (f Filter) matches(p contractx.Product) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, p.Category) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinStock != nil && p.Stock < *f.MinStock {
		return false
	}
	if f.MinRating != nil && p.Rating < *f.MinRating {
		return false
	}
	if f.MaxRating != nil && p.Rating > *f.MaxRating {
		return false
	}
	return true
}

func (f Filter) compare(a, b contractx.Product) int {
	var cmp int
	switch f.SortKey {
	case SortPrice:
		cmp = compareFloat(a.Price, b.Price)
	case SortRating:
		cmp = compareFloat(a.Rating, b.Rating)
	case SortSales:
		cmp = a.Sales - b.Sales
	}
	if f.Descending {
		return -cmp
	}
	return cmp
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
