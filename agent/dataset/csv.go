package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
)

// CSVConfig points at the product and FAQ export files.
type CSVConfig struct {
	ProductPath string `envconfig:"PRODUCT_PATH" split_words:"true" default:"Product_Statistics.csv"`
	FaqPath     string `envconfig:"FAQ_PATH" split_words:"true" default:"FAQ.csv"`
}

// LoadCSV reads both exports and returns a validated snapshot.
func LoadCSV(cfg CSVConfig) (Snapshot, error) {
	products, err := loadProductsCSV(cfg.ProductPath)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load products: %w", err)
	}
	faqs, err := loadFaqCSV(cfg.FaqPath)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load faq: %w", err)
	}

	snap := Snapshot{Products: products, Faqs: faqs}
	if err := snap.Validate(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func loadProductsCSV(path string) ([]contractx.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseProducts(f)
}

func loadFaqCSV(path string) ([]contractx.FaqEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseFaq(f)
}

// ParseProducts decodes a product CSV export. Headers are normalized to
// lowercase with underscores, so "Product ID" and "product_id" both work.
func ParseProducts(r io.Reader) ([]contractx.Product, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, err
	}

	required := []string{"product_id", "name", "category", "price", "stock_level", "rating"}
	for _, col := range required {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	products := make([]contractx.Product, 0, len(rows))
	for i, row := range rows {
		line := i + 2 // 1-based, after the header
		id, err := strconv.ParseInt(cell(row, header, "product_id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: product_id: %w", line, err)
		}
		price, err := strconv.ParseFloat(cell(row, header, "price"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: price: %w", line, err)
		}
		stock, err := strconv.Atoi(cell(row, header, "stock_level"))
		if err != nil {
			return nil, fmt.Errorf("row %d: stock_level: %w", line, err)
		}
		rating, err := strconv.ParseFloat(cell(row, header, "rating"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: rating: %w", line, err)
		}

		sales := 0
		if _, ok := header["sales_count"]; ok {
			sales, err = strconv.Atoi(cell(row, header, "sales_count"))
			if err != nil {
				return nil, fmt.Errorf("row %d: sales_count: %w", line, err)
			}
		}

		products = append(products, contractx.Product{
			ID:       id,
			Name:     cell(row, header, "name"),
			Category: cell(row, header, "category"),
			Price:    price,
			Stock:    stock,
			Rating:   rating,
			Sales:    sales,
		})
	}
	return products, nil
}

// ParseFaq decodes a FAQ CSV export with question/answer columns and an
// optional comma-separated tags column.
func ParseFaq(r io.Reader) ([]contractx.FaqEntry, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	for _, col := range []string{"question", "answer"} {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	entries := make([]contractx.FaqEntry, 0, len(rows))
	for _, row := range rows {
		entry := contractx.FaqEntry{
			Question: cell(row, header, "question"),
			Answer:   cell(row, header, "answer"),
		}
		if _, ok := header["tags"]; ok {
			for _, tag := range strings.Split(cell(row, header, "tags"), ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					entry.Tags = append(entry.Tags, tag)
				}
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func readAll(r io.Reader) (map[string]int, [][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("csv input is empty")
	}

	header := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		header[normalizeHeader(col)] = i
	}
	return header, records[1:], nil
}

func normalizeHeader(col string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(col)), " ", "_")
}

func cell(row []string, header map[string]int, col string) string {
	idx := header[col]
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
