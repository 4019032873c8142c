package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/nunja524/Salmonrun-BINGO/internal/domain"
)

// RemoteCatalog fetches the catalog over HTTP. URLs are tried in order until
// one succeeds; the first successful result is kept for the process lifetime.
type RemoteCatalog struct {
	httpClient *http.Client
	urls       []string
	logger     *slog.Logger

	mu    sync.Mutex
	items []domain.Item
}

func NewRemoteCatalog(httpClient *http.Client, urls []string, logger *slog.Logger) *RemoteCatalog {
	return &RemoteCatalog{
		httpClient: httpClient,
		urls:       urls,
		logger:     logger,
	}
}

func (c *RemoteCatalog) Items(ctx context.Context) ([]domain.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items != nil {
		return c.items, nil
	}
	if len(c.urls) == 0 {
		return nil, fmt.Errorf("no catalog urls configured")
	}

	var lastErr error
	for _, u := range c.urls {
		items, err := c.fetch(ctx, u)
		if err == nil {
			c.logger.InfoContext(ctx, "catalog loaded", "url", u, "items", len(items))
			c.items = items
			return items, nil
		}
		lastErr = err
		if len(c.urls) > 1 {
			c.logger.WarnContext(ctx, "catalog source failed, trying next", "url", u, "error", err)
		}
	}
	return nil, lastErr
}

func (c *RemoteCatalog) fetch(ctx context.Context, url string) ([]domain.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog status %d: %s", resp.StatusCode, string(body))
	}
	return Decode(body)
}
