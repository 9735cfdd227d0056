package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// defaultTimeout bounds a lookup when ClientConfig.Timeout is unset.
const defaultTimeout = 10 * time.Second

type ClientConfig struct {
	// BaseURL is joined with the word to form the lookup URL, e.g.
	// https://api.dictionaryapi.dev/api/v2/entries/en gives
	// https://api.dictionaryapi.dev/api/v2/entries/en/crane.
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond and Burst pace lookups; RequestsPerSecond <= 0
	// means unlimited.
	RequestsPerSecond float64
	Burst             int
	// BatchSize bounds concurrent lookups in FilterKnownWords.
	BatchSize int
}

// Client is a Validator that looks words up in an HTTP dictionary service.
// A 200 response means the word is known and a 404 means it is not; anything
// else is a failure and leaves the word's validity unknown.
type Client struct {
	base      string
	http      *http.Client
	limiter   *rate.Limiter
	batchSize int
	timeout   time.Duration
	logger    *slog.Logger

	group singleflight.Group
}

type ClientOption func(*Client)

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

func NewClient(cfg ClientConfig, opts ...ClientOption) (*Client, error) {
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid dictionary url %q: %w", cfg.BaseURL, err)
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	c := &Client{
		base:      strings.TrimRight(cfg.BaseURL, "/"),
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(limit, max(cfg.Burst, 1)),
		batchSize: max(cfg.BatchSize, 1),
		timeout:   cfg.Timeout,
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// IsKnownWord shares one lookup between concurrent callers asking about the
// same word. The shared lookup is detached from any one caller's ctx and
// bounded by the client timeout instead; a caller whose ctx ends stops
// waiting without failing the others.
func (c *Client) IsKnownWord(ctx context.Context, word string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrValidationUnavailable, err)
	}
	word = strings.ToLower(word)
	ch := c.group.DoChan(word, func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.lookup(lctx, word)
	})
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%w: %w", ErrValidationUnavailable, ctx.Err())
	case r := <-ch:
		if r.Err != nil {
			return false, r.Err
		}
		return r.Val.(bool), nil
	}
}

func (c *Client) lookup(ctx context.Context, word string) (bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("%w: %w", ErrValidationUnavailable, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/"+url.PathEscape(word), nil)
	if err != nil {
		return false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrValidationUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("%w: looking up %q: %s", ErrValidationUnavailable, word, resp.Status)
	}
}

// FilterKnownWords looks up to BatchSize words at a time. Words whose lookup
// fails are kept, and the failures are reported together.
func (c *Client) FilterKnownWords(ctx context.Context, words []string) ([]string, error) {
	if len(words) == 0 {
		return []string{}, nil
	}
	keep := make([]bool, len(words))
	var (
		mu   sync.Mutex
		errs []error
	)
	var g errgroup.Group
	g.SetLimit(c.batchSize)
	for i, w := range words {
		g.Go(func() error {
			ok, err := c.IsKnownWord(ctx, w)
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				ok = true
			}
			keep[i] = ok
			return nil
		})
	}
	_ = g.Wait()

	out := make([]string, 0, len(words))
	for i, w := range words {
		if keep[i] {
			out = append(out, w)
		}
	}
	if len(errs) > 0 {
		c.logger.Debug("dictionary lookups failed",
			slog.Int("failed", len(errs)),
			slog.Int("words", len(words)))
		return out, fmt.Errorf("%w: %d of %d lookups failed: %w",
			ErrValidationUnavailable, len(errs), len(words), errors.Join(errs...))
	}
	return out, nil
}
