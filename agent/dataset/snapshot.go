// Package dataset produces the validated in-memory snapshots the catalog and
// FAQ index are built from. Sources are interchangeable: local CSV files, an
// HTTP snapshot feed, or a Postgres database read once at startup.
package dataset

import (
	"fmt"

	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
)

// Snapshot is a fully validated dataset, safe to hand to the catalog and FAQ
// index as-is.
type Snapshot struct {
	Products []contractx.Product  `json:"products"`
	Faqs     []contractx.FaqEntry `json:"faqs"`
}

// Validate enforces the record invariants every loader must guarantee:
// unique product IDs, non-negative price and stock, rating within [0,5], and
// non-empty FAQ questions and answers.
func (s Snapshot) Validate() error {
	seen := make(map[int64]struct{}, len(s.Products))
	for i, p := range s.Products {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("product %d: duplicate product_id %d", i, p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Price < 0 {
			return fmt.Errorf("product %d: price %.2f is negative", p.ID, p.Price)
		}
		if p.Stock < 0 {
			return fmt.Errorf("product %d: stock %d is negative", p.ID, p.Stock)
		}
		if p.Rating < 0 || p.Rating > 5 {
			return fmt.Errorf("product %d: rating %.2f outside [0,5]", p.ID, p.Rating)
		}
		if p.Sales < 0 {
			return fmt.Errorf("product %d: sales %d is negative", p.ID, p.Sales)
		}
	}
	for i, f := range s.Faqs {
		if f.Question == "" {
			return fmt.Errorf("faq entry %d: question is empty", i)
		}
		if f.Answer == "" {
			return fmt.Errorf("faq entry %d: answer is empty", i)
		}
	}
	return nil
}
