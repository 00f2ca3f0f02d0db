// Package fetch talks to the dashboard backend over HTTP.
//
// Every endpoint wraps its payload in the same envelope:
//
//	{ "success": boolean, "data": <payload>, "error"?: string }
//
// A fetch succeeds only when the HTTP status is 2xx AND success is true.
// The backend historically mixed the two signals; this package enforces
// both so callers deal with a single contract.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justbuildpd-sudo/newsbot-sub000/dashboard"
)

// Failure classes. Each fetch error wraps exactly one of these so tests and
// callers can tell them apart with errors.Is, while the coordinator only
// ever shows the flattened message.
var (
	// ErrHTTPStatus means a response arrived with a non-2xx status.
	ErrHTTPStatus = errors.New("unexpected http status")

	// ErrAppFailure means the body parsed but success was false or absent.
	ErrAppFailure = errors.New("backend reported failure")

	// ErrDecode means the body was not valid JSON, or the data field did
	// not match the key's payload shape.
	ErrDecode = errors.New("malformed response body")

	// ErrUnknownKey means the key is not part of the dashboard key set.
	ErrUnknownKey = errors.New("unknown dashboard key")
)

// envelope is the uniform response wrapper of every backend endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
}

/*
HTTPFetcher implements types.Fetcher against the dashboard backend.

One fetcher instance serves every key; the key decides the endpoint path and
the payload shape. The per-request timeout is applied here so a hung backend
settles as an error instead of stalling the whole batch forever.
*/
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	logger  *zap.Logger
}

// Option customizes an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithHTTPClient swaps the underlying HTTP client. Tests use this together
// with httptest servers.
func WithHTTPClient(c *http.Client) Option {
	return func(f *HTTPFetcher) { f.client = c }
}

// WithTimeout sets the per-request deadline. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) { f.timeout = d }
}

// WithLogger sets the fetcher's logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *HTTPFetcher) { f.logger = l }
}

// NewHTTPFetcher creates a fetcher for the given backend base URL.
func NewHTTPFetcher(baseURL string, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
		timeout: 10 * time.Second,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

/*
Fetch issues the GET request for one key and returns its typed payload.

Failure taxonomy, all normalized to a single error return:
- network failure: the request itself failed (DNS, refused, timeout)
- HTTP failure: status outside 2xx (wraps ErrHTTPStatus)
- application failure: success flag false or absent (wraps ErrAppFailure)
- parse failure: body or data field not decodable (wraps ErrDecode)
*/
func (f *HTTPFetcher) Fetch(ctx context.Context, key string) (any, error) {
	k := dashboard.Key(key)
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	url := f.baseURL + k.EndpointPath()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", key, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}
	defer resp.Body.Close()

	f.logger.Debug("backend request settled",
		zap.String("key", key),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", key, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %w %d", key, ErrHTTPStatus, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("fetch %s: %w: %v", key, ErrDecode, err)
	}

	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "no error message provided"
		}
		return nil, fmt.Errorf("fetch %s: %w: %s", key, ErrAppFailure, msg)
	}

	// A successful response with no data field is still a success;
	// the key just holds its empty payload.
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return k.EmptyValue(), nil
	}

	value, err := dashboard.Decode(k, env.Data)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w: %v", key, ErrDecode, err)
	}
	return value, nil
}
