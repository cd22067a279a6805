package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/schema"
	"github.com/hashicorp/go-retryablehttp"
)

// DefaultURL is where a locally started GoBarber API listens.
const DefaultURL = "http://localhost:3333"

var encoder = schema.NewEncoder()

type (
	Client struct {
		baseURL *url.URL
		headers http.Header
		http    *retryablehttp.Client

		mu    sync.RWMutex
		token string
	}

	// Config provides configuration details to the API client.
	Config struct {
		// URL of the GoBarber API.
		URL string
		// Timeout bounds every request. Zero means no timeout.
		Timeout time.Duration
		// Headers added to every request.
		Headers http.Header
		// Transport overrides http.DefaultTransport.
		Transport http.RoundTripper
	}
)

func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Headers == nil {
		cfg.Headers = make(http.Header)
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport
	}
	cfg.Headers.Set("User-Agent", "gobarber-client")

	baseURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url: unsupported scheme %q", baseURL.Scheme)
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	return &Client{
		baseURL: baseURL,
		headers: cfg.Headers,
		http: &retryablehttp.Client{
			HTTPClient:   &http.Client{Transport: cfg.Transport, Timeout: cfg.Timeout},
			Backoff:      retryablehttp.DefaultBackoff,
			ErrorHandler: retryablehttp.PassthroughErrorHandler,
			RetryMax:     0,
			CheckRetry: func(_ context.Context, _ *http.Response, err error) (bool, error) {
				return false, err
			},
		},
	}, nil
}

// SetToken attaches token as a bearer credential to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken detaches the bearer credential.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the attached bearer credential, or "".
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// newRequest builds a request for path, which is relative to the base URL and
// given without a leading slash. query, when non-nil, is encoded into the URL
// with the schema encoder; body, when non-nil, is sent as JSON.
func (c *Client) newRequest(method, path string, query, body any) (*retryablehttp.Request, error) {
	u, err := c.baseURL.Parse(path)
	if err != nil {
		return nil, err
	}

	if query != nil {
		q := url.Values{}
		if err := encoder.Encode(query, q); err != nil {
			return nil, fmt.Errorf("encoding query: %w", err)
		}
		u.RawQuery = q.Encode()
	}

	var payload any
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding body: %w", err)
		}
		payload = b
	}

	req, err := retryablehttp.NewRequest(method, u.String(), payload)
	if err != nil {
		return nil, err
	}

	maps.Copy(req.Header, c.headers)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// newUploadRequest builds a request whose body is already encoded.
func (c *Client) newUploadRequest(method, path, contentType string, body *bytes.Buffer) (*retryablehttp.Request, error) {
	u, err := c.baseURL.Parse(path)
	if err != nil {
		return nil, err
	}
	req, err := retryablehttp.NewRequest(method, u.String(), body)
	if err != nil {
		return nil, err
	}

	maps.Copy(req.Header, c.headers)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do sends req and decodes a JSON response into v unless v is nil.
func (c *Client) do(ctx context.Context, req *retryablehttp.Request, v any) error {
	req = req.WithContext(ctx)

	resp, err := c.http.Do(req)
	if err != nil {
		// a cancelled context explains the failure better than the transport error
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkResponseCode(resp); err != nil {
		return err
	}

	if v == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func checkResponseCode(r *http.Response) error {
	if r.StatusCode >= 200 && r.StatusCode <= 299 {
		return nil
	}
	switch r.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusRequestTimeout, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	}
	return &Error{StatusCode: r.StatusCode, Message: tryDecodeMessage(r.Body)}
}

// tryDecodeMessage extracts the "message" field of an API error body. It
// returns "" when the body is not such a document.
func tryDecodeMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}

// IsUnavailable reports whether err means the API could not be reached.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
