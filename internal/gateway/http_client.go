package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"recon-forcematch/internal/domain"
)

const (
	exceptionsPath = "/api/recon/exceptions"
	forceMatchPath = "/api/recon/force-match"
)

// Client is the HTTP implementation of the reconciliation gateway. Both
// upstream operations run through one circuit breaker: when the upstream is
// down, fetches fail fast and the poller keeps the list empty until the
// breaker lets a probe through.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient creates a client for the upstream reconciliation API.
func NewClient(baseURL string, timeout time.Duration, failureThreshold uint32, resetTimeout time.Duration) *Client {
	settings := gobreaker.Settings{Name: "recon-upstream"}
	settings.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= failureThreshold
	}
	settings.Timeout = resetTimeout

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// FetchRawRecords retrieves the current exception snapshot. The response may
// wrap the bundle mapping under a "data" or "exceptions" envelope key; an
// empty or absent mapping yields an empty result, not an error.
func (c *Client) FetchRawRecords(ctx context.Context) (map[string]domain.RawBundle, error) {
	body, err := c.do(ctx, http.MethodGet, exceptionsPath, nil)
	if err != nil {
		return nil, err
	}
	return decodeBundles(body)
}

// SubmitForceMatch issues the force-match write. A non-2xx response is
// returned as an error carrying the server-provided reason.
func (c *Client) SubmitForceMatch(ctx context.Context, req domain.ForceMatchRequest) error {
	if req.Action == "" {
		req.Action = "match"
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode force-match request: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, forceMatchPath, bytes.NewReader(payload))
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		requestID := uuid.NewString()

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return nil, fmt.Errorf("failed to build request %s %s: %w", method, path, err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", requestID)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		log.Debug().Str("request_id", requestID).Str("method", method).Str("path", path).Msg("upstream request")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
		}
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return nil, fmt.Errorf("%s %s: %s", method, path, serverReason(data, resp.StatusCode))
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// serverReason extracts the upstream-provided failure description, falling
// back to the status code.
func serverReason(body []byte, status int) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fmt.Sprintf("upstream returned status %d", status)
}

// envelopeKeys are tried in order before decoding the body as a bare
// mapping.
var envelopeKeys = []string{"data", "exceptions"}

func decodeBundles(body []byte) (map[string]domain.RawBundle, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]domain.RawBundle{}, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode exceptions payload: %w", err)
	}

	for _, key := range envelopeKeys {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		bundles := map[string]domain.RawBundle{}
		if string(bytes.TrimSpace(raw)) == "null" {
			return bundles, nil
		}
		if err := json.Unmarshal(raw, &bundles); err != nil {
			return nil, fmt.Errorf("failed to decode %q envelope: %w", key, err)
		}
		return bundles, nil
	}

	bundles := map[string]domain.RawBundle{}
	if err := json.Unmarshal(body, &bundles); err != nil {
		return nil, fmt.Errorf("failed to decode exceptions mapping: %w", err)
	}
	return bundles, nil
}
