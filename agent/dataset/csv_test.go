package dataset

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
)

func TestParseProducts(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"Product ID,Name,Category,Price,Stock Level,Rating,Sales Count",
		"101,Espresso Machine,kitchen,189.99,7,4.6,340",
		"102,French Press,kitchen,24.50,0,4.1,95",
	}, "\n")

	got, err := ParseProducts(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseProducts() error: %v", err)
	}
	want := []contractx.Product{
		{ID: 101, Name: "Espresso Machine", Category: "kitchen", Price: 189.99, Stock: 7, Rating: 4.6, Sales: 340},
		{ID: 102, Name: "French Press", Category: "kitchen", Price: 24.50, Stock: 0, Rating: 4.1, Sales: 95},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected products (-want +got):\n%s", diff)
	}
}

func TestParseProductsNormalizedHeaders(t *testing.T) {
	t.Parallel()

	// Underscore headers and missing optional sales column.
	input := strings.Join([]string{
		"product_id,name,category,price,stock_level,rating",
		"1,Desk Fan,home,35,3,4.0",
	}, "\n")

	got, err := ParseProducts(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseProducts() error: %v", err)
	}
	if len(got) != 1 || got[0].Sales != 0 {
		t.Fatalf("unexpected products: %+v", got)
	}
}

func TestParseProductsMissingColumn(t *testing.T) {
	t.Parallel()

	input := "product_id,name,price\n1,Desk Fan,35\n"
	_, err := ParseProducts(strings.NewReader(input))
	if err == nil || !strings.Contains(err.Error(), "category") {
		t.Fatalf("expected missing-column error naming category, got %v", err)
	}
}

func TestParseProductsBadCellReportsRow(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"product_id,name,category,price,stock_level,rating",
		"1,Desk Fan,home,35,3,4.0",
		"2,Heater,home,not-a-price,5,4.2",
	}, "\n")

	_, err := ParseProducts(strings.NewReader(input))
	if err == nil || !strings.Contains(err.Error(), "row 3") {
		t.Fatalf("expected row 3 price error, got %v", err)
	}
}

func TestParseFaq(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"Question,Answer,Tags",
		`What is your return policy?,30 days from delivery.,"returns, refund"`,
		"Do you ship internationally?,Yes to 40 countries.,",
	}, "\n")

	got, err := ParseFaq(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseFaq() error: %v", err)
	}
	want := []contractx.FaqEntry{
		{Question: "What is your return policy?", Answer: "30 days from delivery.", Tags: []string{"returns", "refund"}},
		{Question: "Do you ship internationally?", Answer: "Yes to 40 countries."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected entries (-want +got):\n%s", diff)
	}
}

func TestParseFaqWithoutTagsColumn(t *testing.T) {
	t.Parallel()

	input := "question,answer\nHow do I reset my password?,Use the account page.\n"
	got, err := ParseFaq(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseFaq() error: %v", err)
	}
	if len(got) != 1 || got[0].Tags != nil {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestSnapshotValidate(t *testing.T) {
	t.Parallel()

	valid := Snapshot{
		Products: []contractx.Product{{ID: 1, Name: "Mug", Category: "kitchen", Price: 9, Stock: 4, Rating: 4.5}},
		Faqs:     []contractx.FaqEntry{{Question: "q", Answer: "a"}},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() rejected a valid snapshot: %v", err)
	}

	cases := []struct {
		name string
		snap Snapshot
	}{
		{
			name: "duplicate product id",
			snap: Snapshot{Products: []contractx.Product{
				{ID: 1, Rating: 4}, {ID: 1, Rating: 4},
			}},
		},
		{
			name: "negative price",
			snap: Snapshot{Products: []contractx.Product{{ID: 1, Price: -5, Rating: 4}}},
		},
		{
			name: "negative stock",
			snap: Snapshot{Products: []contractx.Product{{ID: 1, Stock: -1, Rating: 4}}},
		},
		{
			name: "rating out of range",
			snap: Snapshot{Products: []contractx.Product{{ID: 1, Rating: 5.5}}},
		},
		{
			name: "empty faq question",
			snap: Snapshot{Faqs: []contractx.FaqEntry{{Answer: "a"}}},
		},
		{
			name: "empty faq answer",
			snap: Snapshot{Faqs: []contractx.FaqEntry{{Question: "q"}}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := tc.snap.Validate(); err == nil {
				t.Fatal("Validate() accepted an invalid snapshot")
			}
		})
	}
}
