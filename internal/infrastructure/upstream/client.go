package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tillpoint/tillpoint-api/pkg/apperror"
)

type bearerKey struct{}

// WithBearer attaches the caller's bearer credential to the context so it is
// forwarded on upstream requests. The identity provider issues one credential
// good for all collaborator services.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

// BearerFromContext returns the forwarded credential, if any.
func BearerFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(bearerKey{}).(string); ok {
		return token
	}
	return ""
}

// client is the shared JSON-over-HTTP plumbing under every collaborator
// wrapper. Collaborators own all persistence; we only speak their API.
type client struct {
	baseURL string
	http    *http.Client
	service string
}

func newClient(baseURL string, timeout time.Duration, service string) *client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		service: service,
	}
}

// errNotFound lets wrappers translate an upstream 404 into their own
// "absent" semantics (e.g. customer lookup misses are not errors).
var errNotFound = errors.New("upstream: not found")

type errorBody struct {
	Message string `json:"message"`
}

func (c *client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u = u + "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("upstream: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := BearerFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperror.ErrUpstreamTimeout
		}
		return apperror.NewUpstreamError(c.service, err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound
	case resp.StatusCode >= 400:
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		if eb.Message == "" {
			eb.Message = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		return apperror.NewUpstreamError(c.service, eb.Message)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperror.NewUpstreamError(c.service, "malformed response: "+err.Error())
		}
	}
	return nil
}

// cents converts a decimal wire amount to int64 cents with round-half-up.
func cents(v float64) int64 {
	if v < 0 {
		return -cents(-v)
	}
	return int64(v*100 + 0.5)
}
