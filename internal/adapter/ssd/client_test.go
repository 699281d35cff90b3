package ssd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdcockrum/cneos-explorer/internal/domain"
	"github.com/cdcockrum/cneos-explorer/internal/observability"
)

const (
	fireballEnvelope = `{
		"signature": {"source": "NASA/JPL Fireball Data API", "version": "1.0"},
		"count": "1",
		"fields": ["date", "energy", "lat", "lon"],
		"data": [["2023-01-01 00:00:00", "0.5", "10.0", "-20.0"]]
	}`
	cadEnvelope = `{
		"signature": {"source": "NASA/JPL SBDB Close Approach Data API", "version": "1.5"},
		"count": 1,
		"fields": ["des", "cd", "dist", "v_rel", "h"],
		"data": [["2010 AB", "2026-Jan-01 12:00", "0.05", "15.3", "22.1"]]
	}`
)

func testClient(fireballURL, cadURL string) *Client {
	return &Client{
		fireballURL: fireballURL,
		cadURL:      cadURL,
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:     observability.NewMetricsForTesting(),
	}
}

func f64(v float64) *float64 { return &v }

func TestClient_Fireballs_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "2020-01-01", r.URL.Query().Get("date-min"))
		assert.Equal(t, "0.5", r.URL.Query().Get("energy-min"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fireballEnvelope))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	q := domain.FireballQuery{Limit: 10, DateMin: "2020-01-01", EnergyMin: f64(0.5)}

	payload, err := c.Fireballs(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, []string{"date", "energy", "lat", "lon"}, payload.Fields)
	require.Len(t, payload.Data, 1)
	assert.Equal(t, "0.5", payload.Data[0][1])
	assert.Empty(t, payload.Error)
}

func TestClient_CloseApproaches_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "date", r.URL.Query().Get("sort"))
		assert.Equal(t, "0.05", r.URL.Query().Get("dist-max"))
		assert.Empty(t, r.URL.Query().Get("h-min"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(cadEnvelope))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	q := domain.CloseApproachQuery{Limit: 10, DistMax: f64(0.05)}

	payload, err := c.CloseApproaches(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, []string{"des", "cd", "dist", "v_rel", "h"}, payload.Fields)
	require.Len(t, payload.Data, 1)
	assert.Equal(t, "2010 AB", payload.Data[0][0])
}

func TestClient_Fireballs_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream maintenance"))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	_, err := c.Fireballs(context.Background(), domain.FireballQuery{Limit: 10})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, "upstream maintenance", statusErr.Body)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_Fireballs_StatusErrorBodySnippet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 2000)))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	_, err := c.Fireballs(context.Background(), domain.FireballQuery{Limit: 10})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Len(t, statusErr.Body, bodySnippetLimit)
}

func TestClient_Fireballs_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	_, err := c.Fireballs(context.Background(), domain.FireballQuery{Limit: 10})
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestClient_Fireballs_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": "invalid query: bad date format"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	_, err := c.Fireballs(context.Background(), domain.FireballQuery{Limit: 10})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "invalid query: bad date format", apiErr.Message)
}

func TestClient_ErrorKeyWinsOverSiblingData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": "partial failure", "fields": ["date"], "data": [["2023-01-01"]]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	_, err := c.Fireballs(context.Background(), domain.FireballQuery{Limit: 10})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "partial failure", apiErr.Message)
}

func TestClient_Fireballs_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	srv.Close() // connection refused

	c := testClient(srv.URL, srv.URL)
	_, err := c.Fireballs(context.Background(), domain.FireballQuery{Limit: 10})
	require.Error(t, err)

	var reqErr *RequestError
	assert.True(t, errors.As(err, &reqErr))
}

func TestClient_Fireballs_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	c.httpClient = &http.Client{Timeout: 50 * time.Millisecond}

	_, err := c.Fireballs(context.Background(), domain.FireballQuery{Limit: 10})
	require.Error(t, err)

	var reqErr *RequestError
	assert.True(t, errors.As(err, &reqErr))
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, "success"},
		{"request error", &RequestError{URL: "u"}, "network_error"},
		{"status error", &StatusError{URL: "u", StatusCode: 500}, "status_error"},
		{"decode error", &DecodeError{URL: "u"}, "decode_error"},
		{"api error", &APIError{URL: "u"}, "api_error"},
		{"other", errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, outcome(tt.err))
		})
	}
}
