package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

const (
	formPath  = "/get-form"
	loginPath = "/create-user"
)

// HTTPOption customises an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithHTTPClient supplies the underlying *http.Client. The client is copied so
// the caller's value is never mutated.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPClient) {
		if c != nil {
			clone := *c
			h.http = &clone
		}
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(h *HTTPClient) {
		h.timeout = timeout
	}
}

// HTTPClient implements Fetcher and Authenticator against the form API.
type HTTPClient struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
}

var (
	_ Fetcher       = (*HTTPClient)(nil)
	_ Authenticator = (*HTTPClient)(nil)
)

// NewHTTPClient builds a client rooted at baseURL.
func NewHTTPClient(baseURL string, options ...HTTPOption) (*HTTPClient, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("client: base url %q must be absolute", baseURL)
	}

	h := &HTTPClient{base: base, http: &http.Client{}}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

type loginRequest struct {
	RollNumber string `json:"rollNumber"`
	Name       string `json:"name"`
}

// Login registers the user with POST /create-user.
func (h *HTTPClient) Login(ctx context.Context, rollNumber, name string) error {
	rollNumber = strings.TrimSpace(rollNumber)
	if rollNumber == "" {
		return ErrRollNumberRequired
	}
	body, err := json.Marshal(loginRequest{RollNumber: rollNumber, Name: strings.TrimSpace(name)})
	if err != nil {
		return fmt.Errorf("client: encode login: %w", err)
	}
	if _, err := h.do(ctx, http.MethodPost, h.endpoint(loginPath, nil), body); err != nil {
		return fmt.Errorf("client: login: %w", err)
	}
	return nil
}

// Fetch retrieves the form for rollNumber with GET /get-form.
func (h *HTTPClient) Fetch(ctx context.Context, rollNumber string) (schema.Form, error) {
	rollNumber = strings.TrimSpace(rollNumber)
	if rollNumber == "" {
		return schema.Form{}, ErrRollNumberRequired
	}
	query := url.Values{"rollNumber": []string{rollNumber}}
	data, err := h.do(ctx, http.MethodGet, h.endpoint(formPath, query), nil)
	if err != nil {
		return schema.Form{}, fmt.Errorf("client: fetch form: %w", err)
	}
	form, err := schema.DecodeEnvelope(data)
	if err != nil {
		return schema.Form{}, fmt.Errorf("client: fetch form: %w", err)
	}
	return form, nil
}

func (h *HTTPClient) endpoint(path string, query url.Values) string {
	u := *h.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()
	return u.String()
}

func (h *HTTPClient) do(ctx context.Context, method, target string, body []byte) ([]byte, error) {
	reqCtx := ctx
	if h.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w %s", ErrUnexpectedStatus, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
