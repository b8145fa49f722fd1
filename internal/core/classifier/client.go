// Package classifier asks an external generative-text endpoint to label a
// transaction with a spending category. Every failure degrades to a sentinel
// category; nothing here returns an error to the caller.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Nzyazin/ledger/internal/core/logger"
	"github.com/Nzyazin/ledger/internal/core/metrics"
)

const DefaultTimeout = 10 * time.Second

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	// URL is joined with APIKey verbatim, e.g. ".../models/x:generateContent?key=".
	URL        string
	APIKey     string
	Timeout    time.Duration
	Categories []string
}

// Classification is the outcome of one call. Err is nil on success and
// otherwise wraps one of ErrTransport, ErrMalformedResponse, ErrNoCandidates.
type Classification struct {
	Category string
	Err      error
}

func (c Classification) Degraded() bool {
	return c.Err != nil
}

type Client struct {
	cfg     Config
	http    HTTPClient
	log     logger.Logger
	metrics *metrics.Metrics
}

func NewClient(cfg Config, httpClient HTTPClient, log logger.Logger, m *metrics.Metrics) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, http: httpClient, log: log, metrics: m}
}

// Classify makes exactly one request.
func (c *Client) Classify(ctx context.Context, reference, amount string) Classification {
	start := time.Now()

	text, err := c.call(ctx, buildPrompt(reference, amount, c.cfg.Categories))

	c.metrics.ClassifierDuration.Observe(time.Since(start).Seconds())
	c.metrics.ClassifierRequests.WithLabelValues(outcomeLabel(err)).Inc()

	if err != nil {
		c.log.Warn("Classification degraded",
			logger.StringField("reference", reference),
			logger.StringField("amount", amount),
			logger.ErrorField("error", err))
		return Classification{Category: sentinelFor(err), Err: err}
	}

	category := c.canonicalLabel(text)
	c.log.Debug("Transaction classified",
		logger.StringField("reference", reference),
		logger.StringField("category", category),
		logger.DurationField("took", time.Since(start)))

	return Classification{Category: category}
}

func (c *Client) call(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(newGenerateRequest(prompt)); err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+c.cfg.APIKey, &buf)
	if err != nil {
		return "", fmt.Errorf("%w: build request: invalid classifier URL", ErrTransport)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the API key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode)
	}

	return extractText(resp.Body)
}

// canonicalLabel restores the configured casing when the model answers with
// a known label in different case. Unknown labels are kept as returned.
func (c *Client) canonicalLabel(text string) string {
	for _, category := range c.cfg.Categories {
		if strings.EqualFold(category, text) {
			return category
		}
	}
	c.log.Warn("Classifier answered outside the label set", logger.StringField("category", text))
	return text
}
