package ssd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cdcockrum/cneos-explorer/internal/config"
	"github.com/cdcockrum/cneos-explorer/internal/domain"
	"github.com/cdcockrum/cneos-explorer/internal/observability"
)

// bodySnippetLimit caps how much of an error response body is kept for
// logging and error messages.
const bodySnippetLimit = 500

// Metrics label values for the two endpoints.
const (
	apiFireball = "fireball"
	apiCAD      = "cad"
)

// Client fetches columnar payloads from the SSD/CNEOS endpoints. Failures
// never retry; each is classified, logged with request context, and
// returned to the caller.
type Client struct {
	fireballURL string
	cadURL      string
	httpClient  *http.Client
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewClient creates an SSD/CNEOS API client.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		fireballURL: cfg.FireballAPIURL,
		cadURL:      cfg.CADAPIURL,
		httpClient: &http.Client{
			Timeout: cfg.SSDTimeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// Fireballs fetches fireball events matching the query.
func (c *Client) Fireballs(ctx context.Context, q domain.FireballQuery) (domain.Payload, error) {
	return c.fetch(ctx, c.fireballURL, q.Params(), apiFireball)
}

// CloseApproaches fetches close-approach records matching the query.
func (c *Client) CloseApproaches(ctx context.Context, q domain.CloseApproachQuery) (domain.Payload, error) {
	return c.fetch(ctx, c.cadURL, q.Params(), apiCAD)
}

func (c *Client) fetch(ctx context.Context, baseURL string, params url.Values, api string) (domain.Payload, error) {
	fullURL := baseURL + "?" + params.Encode()

	start := time.Now()
	payload, err := c.doRequest(ctx, fullURL)
	c.metrics.APIDuration.WithLabelValues(api).Observe(time.Since(start).Seconds())
	c.metrics.APIRequests.WithLabelValues(api, outcome(err)).Inc()

	if err != nil {
		c.logger.Error("upstream fetch failed",
			"api", api,
			"url", baseURL,
			"params", params.Encode(),
			"error", err,
		)
		return domain.Payload{}, err
	}

	c.logger.Debug("upstream fetch succeeded", "api", api, "rows", len(payload.Data))
	return payload, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (domain.Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.Payload{}, &RequestError{URL: fullURL, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Payload{}, &RequestError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, bodySnippetLimit))
		return domain.Payload{}, &StatusError{
			URL:        fullURL,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var payload domain.Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Payload{}, &DecodeError{URL: fullURL, Err: err}
	}

	if payload.Error != "" {
		return domain.Payload{}, &APIError{URL: fullURL, Message: payload.Error}
	}

	return payload, nil
}

// outcome maps an error to its metrics label value.
func outcome(err error) string {
	if err == nil {
		return "success"
	}

	var (
		reqErr    *RequestError
		statusErr *StatusError
		decodeErr *DecodeError
		apiErr    *APIError
	)
	switch {
	case errors.As(err, &reqErr):
		return "network_error"
	case errors.As(err, &statusErr):
		return "status_error"
	case errors.As(err, &decodeErr):
		return "decode_error"
	case errors.As(err, &apiErr):
		return "api_error"
	default:
		return "error"
	}
}
