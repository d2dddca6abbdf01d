// Package fetch downloads the published OpenAPI document. Acquisition is
// a plain fetch-with-retry concern, kept apart from the interpreter.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/tornlabs/tornspec/internal/artifact"
)

// DefaultURL is the published Torn OpenAPI document.
const DefaultURL = "https://www.torn.com/swagger/openapi.json"

// A browser-ish agent string; the default Go agent gets blocked upstream.
const defaultUserAgent = "tornspec/1.0 (spec-fetcher; +https://github.com/tornlabs/tornspec)"

// Options configures the fetch client.
type Options struct {
	URL       string
	UserAgent string
	// Retries is the number of additional attempts after the first.
	Retries int
	Timeout time.Duration
	Backoff time.Duration
	Client  *http.Client
	Logger  *slog.Logger
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		URL:       DefaultURL,
		UserAgent: defaultUserAgent,
		Retries:   2,
		Timeout:   30 * time.Second,
		Backoff:   time.Second,
	}
}

type Client struct {
	opts Options
	http *http.Client
	log  *slog.Logger
}

func New(opts *Options) *Client {
	defaults := DefaultOptions()
	if opts == nil {
		opts = defaults
	}
	if opts.URL == "" {
		opts.URL = defaults.URL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaults.UserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.Backoff <= 0 {
		opts.Backoff = defaults.Backoff
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}

	httpClient := opts.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{opts: *opts, http: httpClient, log: logger}
}

// Fetch downloads the document, retrying transient failures with linear
// backoff. The context bounds the whole operation including backoff waits.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.opts.Retries; attempt++ {
		if attempt > 0 {
			c.log.Warn("retrying spec fetch", "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * c.opts.Backoff):
			}
		}
		data, err := c.fetchOnce(ctx)
		if err == nil {
			c.log.Info("fetched spec", "url", c.opts.URL, "bytes", len(data))
			return data, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("fetching spec after %d attempts: %w", c.opts.Retries+1, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// WriteSpec re-serializes the fetched document deterministically (sorted
// keys, two-space indent) and writes it to path, so a refetch of an
// unchanged spec produces no diff.
func WriteSpec(path string, data []byte) error {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("decoding fetched spec: %w", err)
	}
	out, err := artifact.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encoding spec: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating spec directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
