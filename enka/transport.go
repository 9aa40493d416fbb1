package enka

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Response is the raw outcome of one HTTP exchange.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
}

// Transport performs one HTTP GET. Implementations attach the configured
// User-Agent and timeout; they return an error only for transport-level
// failures, leaving status-code handling to the resolvers.
type Transport interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

type httpTransport struct {
	client    *http.Client
	userAgent string
}

func newHTTPTransport(timeout time.Duration, userAgent string) *httpTransport {
	return &httpTransport{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

func (t *httpTransport) Fetch(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
	}, nil
}
