package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the collegiate dictionary JSON endpoint.
	DefaultBaseURL = "https://www.dictionaryapi.com/api/v3/references/collegiate/json"

	DefaultTimeout      = 10 * time.Second
	DefaultRetryBackoff = 500 * time.Millisecond

	// Breaker defaults: open after this many consecutive failures, probe
	// again after the cooldown.
	DefaultBreakerFailures = 5
	DefaultBreakerCooldown = 30 * time.Second

	maxBodyBytes = 8 << 20
)

// Config holds the immutable client settings.
type Config struct {
	APIKey          string
	BaseURL         string
	Timeout         time.Duration
	RetryBackoff    time.Duration
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// DefaultConfig returns a config with every field except the API key set.
func DefaultConfig() Config {
	return Config{
		BaseURL:         DefaultBaseURL,
		Timeout:         DefaultTimeout,
		RetryBackoff:    DefaultRetryBackoff,
		BreakerFailures: DefaultBreakerFailures,
		BreakerCooldown: DefaultBreakerCooldown,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = d.RetryBackoff
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = d.BreakerFailures
	}
	if c.BreakerCooldown <= 0 {
		c.BreakerCooldown = d.BreakerCooldown
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c
}

// Client fetches raw dictionary responses. It is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewClient creates a client. A nil logger discards log output.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "dictionary"))

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "merriam-webster",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			// The API answered, or the caller gave up; only transport
			// trouble counts against it.
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrEmptyBody) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return c, nil
}

// Fetch returns the raw response body for word. Every failure is a
// *TransportError wrapping one of the package sentinels, a context error
// or the underlying network error.
func (c *Client) Fetch(ctx context.Context, word string) ([]byte, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, word)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return nil, &TransportError{Word: word, Err: err}
	}
	return out.([]byte), nil
}

func (c *Client) fetch(ctx context.Context, word string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	c.logger.Debug("dictionary request", zap.String("word", word))

	resp, err := c.doWithRetry(ctx, word)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, ErrEmptyBody
	}

	c.logger.Debug("dictionary response",
		zap.String("word", word),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))
	return body, nil
}

// doWithRetry sends the request, retrying once on a network error or 5xx.
func (c *Client) doWithRetry(ctx context.Context, word string) (*http.Response, error) {
	resp, err := c.do(ctx, word)

	shouldRetry := err != nil || resp.StatusCode >= 500
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	c.logger.Warn("dictionary retry", zap.String("word", word), zap.String("reason", reason))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.cfg.RetryBackoff):
	}
	return c.do(ctx, word)
}

func (c *Client) do(ctx context.Context, word string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(word), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

func (c *Client) requestURL(word string) string {
	q := url.Values{}
	q.Set("key", c.cfg.APIKey)
	return c.cfg.BaseURL + "/" + url.PathEscape(word) + "?" + q.Encode()
}

// BreakerState reports the current breaker state, mainly for logs.
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}
