package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
)

// PostgresConfig describes the dataset database. It is read exactly once at
// startup; the running agent only ever sees the immutable snapshot.
type PostgresConfig struct {
	DSN     string        `envconfig:"DSN" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

type productRow struct {
	bun.BaseModel `bun:"table:products"`

	ID       int64   `bun:"product_id,pk"`
	Name     string  `bun:"name"`
	Category string  `bun:"category"`
	Price    float64 `bun:"price"`
	Stock    int     `bun:"stock_level"`
	Rating   float64 `bun:"rating"`
	Sales    int     `bun:"sales_count"`
}

type faqRow struct {
	bun.BaseModel `bun:"table:faq_entries"`

	ID       int64    `bun:"id,pk"`
	Question string   `bun:"question"`
	Answer   string   `bun:"answer"`
	Tags     []string `bun:"tags,array"`
}

// LoadPostgres reads the product and FAQ tables into a validated snapshot.
func LoadPostgres(ctx context.Context, cfg PostgresConfig) (Snapshot, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	var productRows []productRow
	if err := db.NewSelect().Model(&productRows).Order("product_id ASC").Scan(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("select products: %w", err)
	}

	var faqRows []faqRow
	if err := db.NewSelect().Model(&faqRows).Order("id ASC").Scan(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("select faq entries: %w", err)
	}

	snap := Snapshot{
		Products: make([]contractx.Product, 0, len(productRows)),
		Faqs:     make([]contractx.FaqEntry, 0, len(faqRows)),
	}
	for _, row := range productRows {
		snap.Products = append(snap.Products, contractx.Product{
			ID:       row.ID,
			Name:     row.Name,
			Category: row.Category,
			Price:    row.Price,
			Stock:    row.Stock,
			Rating:   row.Rating,
			Sales:    row.Sales,
		})
	}
	for _, row := range faqRows {
		snap.Faqs = append(snap.Faqs, contractx.FaqEntry{
			Question: row.Question,
			Answer:   row.Answer,
			Tags:     row.Tags,
		})
	}

	if err := snap.Validate(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
