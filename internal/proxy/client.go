package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"hydroshare-viewer-service/internal/core/domain"
	ports "hydroshare-viewer-service/internal/core/ports/output"
	"hydroshare-viewer-service/internal/observability"
)

// maxBodyBytes caps how much of an upstream answer is read.
const maxBodyBytes = 64 << 20

type Options struct {
	Timeout   time.Duration
	Transport http.RoundTripper
	Cache     ports.ResponseCache
	CacheTTL  time.Duration
	Metrics   *observability.Metrics
}

// Client performs GET requests against one upstream service. Cacheable
// responses are served from and stored in the response cache.
type Client struct {
	service    string
	httpClient *http.Client
	cache      ports.ResponseCache
	cacheTTL   time.Duration
	metrics    *observability.Metrics
}

func NewClient(service string, opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &Client{
		service: service,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(base),
		},
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		metrics:  opts.Metrics,
	}
}

func (c *Client) Service() string { return c.service }

// Get fetches rawURL and returns the response body. Non-2xx answers and
// transport failures are returned as *domain.UpstreamError.
func (c *Client) Get(ctx context.Context, rawURL string, cacheable bool) ([]byte, error) {
	useCache := cacheable && c.cache != nil && c.cacheTTL > 0

	if useCache {
		body, err := c.cache.Get(ctx, rawURL)
		switch {
		case err == nil:
			c.cacheLookup("hit")
			log.WithFields(log.Fields{"service": c.service, "url": rawURL, "cache": "hit"}).Debug("upstream response served from cache")
			return body, nil
		case errors.Is(err, domain.ErrCacheMiss):
			c.cacheLookup("miss")
		default:
			c.cacheLookup("error")
			log.WithError(err).WithField("service", c.service).Warn("response cache read failed")
		}
	}

	body, err := c.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if useCache {
		if err := c.cache.Set(ctx, rawURL, body, c.cacheTTL); err != nil {
			log.WithError(err).WithField("service", c.service).Warn("response cache write failed")
		}
	}
	return body, nil
}

// GetJSON fetches rawURL and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, rawURL string, cacheable bool, v any) error {
	body, err := c.Get(ctx, rawURL, cacheable)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %s: decode json from %s: %v", domain.ErrUpstreamMalformed, c.service, rawURL, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create upstream request: %w", err)
	}

	log.WithFields(log.Fields{
		"service": c.service,
		"method":  http.MethodGet,
		"url":     rawURL,
	}).Debug("forwarding request to upstream")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.observe(start, err == nil && resp.StatusCode < 300)
	if err != nil {
		return nil, &domain.UpstreamError{Service: c.service, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &domain.UpstreamError{Service: c.service, URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.UpstreamError{Service: c.service, URL: rawURL, Err: err}
	}
	return body, nil
}

func (c *Client) observe(start time.Time, ok bool) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "error"
	}
	c.metrics.UpstreamRequests.WithLabelValues(c.service, outcome).Inc()
	c.metrics.UpstreamDuration.WithLabelValues(c.service).Observe(time.Since(start).Seconds())
}

func (c *Client) cacheLookup(result string) {
	if c.metrics != nil {
		c.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}
