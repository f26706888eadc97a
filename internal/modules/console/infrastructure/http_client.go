package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/domain"
	"adminConsole/internal/shared/httputil"
	"adminConsole/internal/shared/normalization"
)

const maxResponseBody = 8 << 20

// RESTClient wraps http.Client with base URL handling and envelope decoding shared by
// the gateway and the analytics fetcher.
type RESTClient struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

func NewRESTClient(baseURL string, timeout time.Duration, client *http.Client) *RESTClient {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = "http://localhost:3000"
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if client == nil {
		client = &http.Client{Timeout: timeoutOrDefault(timeout)}
	} else if timeout > 0 {
		client.Timeout = timeout
	}
	return &RESTClient{baseURL: trimmed, client: client, timeout: timeoutOrDefault(timeout)}
}

func (c *RESTClient) NewRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	return http.NewRequestWithContext(ctx, method, url, body)
}

func (c *RESTClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

// Envelope performs one request and decodes the {responseCode, responseMessage,
// response} envelope. "_id" keys inside the response are rewritten to "id".
//
// 401/403 map to port.ErrForbidden and 404 to port.ErrNotFound. Any other non-2xx status
// returns the decoded envelope when the body carries one with a failure code, and a
// domain.TransportError otherwise.
func (c *RESTClient) Envelope(ctx context.Context, token, method, path string, query url.Values, payload any) (*domain.Envelope, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := c.NewRequest(ctx, method, path, body)
	if err != nil {
		slog.Error("rest request build failed", slog.String("path", path), slog.Any("error", err))
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if trimmed := strings.TrimSpace(token); trimmed != "" {
		req.Header.Set("Authorization", "Bearer "+trimmed)
	}
	if requestID := httputil.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	slog.Debug("rest request", slog.String("method", method), slog.String("url", req.URL.String()))

	res, err := c.Do(req)
	if err != nil {
		slog.Warn("rest request error", slog.String("method", method), slog.String("path", path), slog.Any("error", err))
		return nil, domain.TransportError{Err: err}
	}
	defer res.Body.Close()
	slog.Debug("rest response", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()))

	switch res.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, port.ErrForbidden
	case http.StatusNotFound:
		return nil, port.ErrNotFound
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBody))
	if err != nil {
		return nil, domain.TransportError{Status: res.StatusCode, Err: err}
	}
	success := res.StatusCode >= 200 && res.StatusCode < 300
	if success && res.StatusCode == http.StatusNoContent {
		return &domain.Envelope{ResponseCode: domain.ResponseCodeSuccess}, nil
	}

	env, decodeErr := decodeEnvelope(raw)
	if !success {
		if decodeErr == nil && !env.Succeeded() {
			return env, nil
		}
		slog.Error("rest unexpected status", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()), slog.String("body", snippet(raw)))
		return nil, domain.TransportError{Status: res.StatusCode, Body: snippet(raw)}
	}
	if decodeErr != nil {
		slog.Warn("rest envelope decode failed", slog.String("url", req.URL.String()), slog.Any("error", decodeErr))
		return nil, decodeErr
	}
	return env, nil
}

var errNoEnvelope = errors.New("response carries no responseCode")

func decodeEnvelope(raw []byte) (*domain.Envelope, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	code, ok := payload["responseCode"]
	if !ok {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, errNoEnvelope)
	}
	return &domain.Envelope{
		ResponseCode:    normalization.AsInt(code),
		ResponseMessage: normalization.AsString(payload["responseMessage"]),
		Response:        normalization.CanonicalizeIDs(payload["response"]),
	}, nil
}

func snippet(raw []byte) string {
	const limit = 2048
	if len(raw) > limit {
		raw = raw[:limit]
	}
	return strings.TrimSpace(string(raw))
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return 10 * time.Second
	}
	return value
}
