package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/time/rate"
)

// Client fetches and parses forum pages. Requests are rate limited with a
// shared limiter so that page fetches for different users never exceed the
// configured pace toward the forum, and failed fetches are retried with
// exponential backoff.
type Client struct {
	http       *http.Client
	baseURL    string
	limiter    *rate.Limiter
	decoder    *charmap.Charmap // nil = UTF-8
	maxRetries uint64
}

// Options configures a Client.
type Options struct {
	BaseURL      string
	Encoding     string // "", "utf-8" or "windows-1251"
	RequestDelay time.Duration
	MaxRetries   int
}

// NewClient creates a forum client.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("forum base URL is required")
	}
	if opts.RequestDelay <= 0 {
		opts.RequestDelay = 800 * time.Millisecond
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}

	var decoder *charmap.Charmap
	switch strings.ToLower(opts.Encoding) {
	case "", "utf-8", "utf8":
	case "windows-1251", "cp1251":
		decoder = charmap.Windows1251
	default:
		return nil, fmt.Errorf("unsupported forum encoding %q", opts.Encoding)
	}

	return &Client{
		http:       &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		limiter:    rate.NewLimiter(rate.Every(opts.RequestDelay), 1),
		decoder:    decoder,
		maxRetries: uint64(opts.MaxRetries),
	}, nil
}

// BaseURL returns the forum base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// get fetches a path relative to the base URL, honoring the rate limit and
// retrying transient failures. With decode set, the returned reader is
// already converted to UTF-8; feed fetches pass false because the XML prolog
// declares its own charset.
func (c *Client) get(ctx context.Context, path string, decode bool) (io.Reader, error) {
	url := c.baseURL + path

	var body []byte
	op := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("User-Agent", "rpgdata/1.0")

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return backoff.Permanent(fmt.Errorf("fetch %s: status %d", url, resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
		}

		reader := io.Reader(resp.Body)
		if decode && c.decoder != nil {
			reader = c.decoder.NewDecoder().Reader(reader)
		}
		body, err = io.ReadAll(reader)
		if err != nil {
			return fmt.Errorf("read %s: %w", url, err)
		}
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return nil, err
	}
	return strings.NewReader(string(body)), nil
}

// document fetches a path and parses it as HTML.
func (c *Client) document(ctx context.Context, path string) (*goquery.Document, error) {
	body, err := c.get(ctx, path, true)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
