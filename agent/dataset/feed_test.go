package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const feedBody = `{
	"products": [
		{"product_id": 1, "name": "Desk Lamp", "category": "home", "price": 25, "stock_level": 8, "rating": 4.1, "sales_count": 60}
	],
	"faqs": [
		{"question": "What is your return policy?", "answer": "30 days.", "tags": ["returns"]}
	]
}`

func TestNewFeedClientRejectsBadURL(t *testing.T) {
	t.Parallel()

	if _, err := NewFeedClient(FeedConfig{URL: ""}); err == nil {
		t.Fatal("expected error for empty url")
	}
	if _, err := NewFeedClient(FeedConfig{URL: "not a url"}); err == nil {
		t.Fatal("expected error for malformed url")
	}
}

func TestFetchSnapshot(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/snapshot" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer feed-token" {
			t.Errorf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(feedBody)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	client, err := NewFeedClient(FeedConfig{URL: srv.URL, Token: "feed-token"})
	if err != nil {
		t.Fatalf("NewFeedClient() error: %v", err)
	}

	snap, err := client.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("FetchSnapshot() error: %v", err)
	}
	if len(snap.Products) != 1 || snap.Products[0].Name != "Desk Lamp" {
		t.Fatalf("unexpected products: %+v", snap.Products)
	}
	if len(snap.Faqs) != 1 || snap.Faqs[0].Answer != "30 days." {
		t.Fatalf("unexpected faqs: %+v", snap.Faqs)
	}
}

func TestFetchSnapshotHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewFeedClient(FeedConfig{URL: srv.URL})
	if err != nil {
		t.Fatalf("NewFeedClient() error: %v", err)
	}
	if _, err := client.FetchSnapshot(context.Background()); err == nil || !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected http 503 error, got %v", err)
	}
}

func TestFetchSnapshotRejectsInvalidData(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Duplicate product IDs must not make it past validation.
		body := `{"products":[{"product_id":1,"rating":4},{"product_id":1,"rating":4}],"faqs":[]}`
		if _, err := w.Write([]byte(body)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	client, err := NewFeedClient(FeedConfig{URL: srv.URL})
	if err != nil {
		t.Fatalf("NewFeedClient() error: %v", err)
	}
	if _, err := client.FetchSnapshot(context.Background()); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate-id validation error, got %v", err)
	}
}
