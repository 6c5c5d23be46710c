// Package transport executes assembled connector requests over HTTP.
// Timeout, retry and backoff policy live here, not in the orchestration
// engine.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/config"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/connector"
)

type HTTPTransport struct {
	httpClient *http.Client
}

func NewHTTPTransport(cfg config.HTTPClient) *HTTPTransport {
	return &HTTPTransport{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Send performs exactly one round trip. Any HTTP status, including 4xx and
// 5xx, is a valid Response; only failures to complete the round trip at all
// are returned as errors.
func (t *HTTPTransport) Send(ctx context.Context, req *connector.Request) (*connector.Response, error) {
	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	for _, h := range req.Headers {
		httpReq.Header.Set(h.Name, h.Value)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	return &connector.Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
