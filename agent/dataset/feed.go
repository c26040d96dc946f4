package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxFeedResponseBytes = 2 << 20

// FeedConfig describes a remote snapshot feed serving the dataset as one
// JSON document.
type FeedConfig struct {
	URL     string        `envconfig:"URL" split_words:"true" required:"true"`
	Token   string        `envconfig:"TOKEN" split_words:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

// FeedClient fetches dataset snapshots over REST.
type FeedClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type FeedOption func(*FeedClient)

func WithHTTPClient(client *http.Client) FeedOption {
	return func(c *FeedClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func NewFeedClient(cfg FeedConfig, opts ...FeedOption) (*FeedClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("feed url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid feed url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &FeedClient{
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// FetchSnapshot downloads and validates the current dataset snapshot.
func (c *FeedClient) FetchSnapshot(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/snapshot", nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("build feed request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch snapshot: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("feed returned http %d", res.StatusCode)
	}

	var snap Snapshot
	body := io.LimitReader(res.Body, maxFeedResponseBytes)
	if err := json.NewDecoder(body).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
