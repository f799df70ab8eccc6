package enhance

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/newwork/workforce/internal/config"
)

// package-level logger; can be replaced by callers via SetLogger.
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by this package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Client talks to a local Ollama instance and adds retries, per-request
// timeouts, and a circuit breaker on top of the raw API client.
type Client struct {
	api    *api.Client
	cfg    config.EnhancerConfig
	client *http.Client

	// circuit breaker state
	failures  int32
	openUntil int64 // unix nano
	closed    int32
}

var _ Enhancer = (*Client)(nil)

// NewClient creates a new enhancer client. httpClient may be nil.
func NewClient(cfg config.EnhancerConfig, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{
		api:    api.NewClient(u, httpClient),
		cfg:    cfg,
		client: httpClient,
	}
	logger.Info("enhance: client created",
		slog.String("base_url", cfg.BaseURL),
		slog.String("model", cfg.Model),
		slog.Duration("timeout", cfg.Timeout),
	)
	return c, nil
}

func (c *Client) isCircuitOpen() bool {
	if atomic.LoadInt32(&c.failures) < int32(c.cfg.CircuitFailureThreshold) {
		return false
	}

	if time.Now().UnixNano() < atomic.LoadInt64(&c.openUntil) {
		return true
	}

	// half-open: reset failures and allow a request through
	atomic.StoreInt32(&c.failures, 0)
	return false
}

func (c *Client) recordFailure() {
	v := atomic.AddInt32(&c.failures, 1)
	if v >= int32(c.cfg.CircuitFailureThreshold) {
		atomic.StoreInt64(&c.openUntil, time.Now().Add(c.cfg.CircuitReset).UnixNano())
	}
}

// Close releases idle connections on the underlying transport. It is
// idempotent and safe to call multiple times.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if c.client != nil && c.client.Transport != nil {
		if tr, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
			tr.CloseIdleConnections()
		}
	}
	return nil
}

// Enhance sends the text to the model and returns the polished version. Any
// transport or parse failure after retries surfaces as ErrUnavailable so the
// caller can degrade to the original content.
func (c *Client) Enhance(ctx context.Context, text string) (string, error) {
	if c.isCircuitOpen() {
		return "", ErrUnavailable
	}

	prompt := buildPrompt(text)
	stream := false

	var lastErr error
	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		ctxReq, cancel := context.WithTimeout(ctx, c.cfg.Timeout)

		var out strings.Builder
		req := &api.GenerateRequest{Model: c.cfg.Model, Prompt: prompt, Stream: &stream}
		err := c.api.Generate(ctxReq, req, func(r api.GenerateResponse) error {
			out.WriteString(r.Response)
			return nil
		})
		cancel()

		if err == nil {
			polished, perr := parsePolished(ctx, out.String())
			if perr == nil {
				atomic.StoreInt32(&c.failures, 0)
				return polished, nil
			}
			logger.Warn("enhance: unusable model response", slog.Any("err", perr))
			lastErr = perr
		} else {
			lastErr = err
		}

		c.recordFailure()
		time.Sleep(c.cfg.Backoff * time.Duration(attempt+1))
		if c.isCircuitOpen() {
			break
		}
	}

	logger.Error("enhance: giving up", slog.Any("err", lastErr))
	return "", ErrUnavailable
}
