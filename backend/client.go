package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

const maxBody = 4 << 20

var (
	ErrUpstreamStatus = errors.New("backend: non-success status")
	ErrEmptyResponse  = errors.New("backend: empty response body")
)

// APIError is a non-2xx answer. Message carries the backend's {"error": ...}
// text when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error %d", e.Status)
	}
	return fmt.Sprintf("backend error %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool { return target == ErrUpstreamStatus }

type Options struct {
	BaseURL string
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration
	// RPS of zero disables the outbound limiter.
	RPS    float64
	Burst  int
	Logger *slog.Logger
}

type Client struct {
	baseURL string
	http    *retryablehttp.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = logger
	if opts.Timeout > 0 {
		rc.HTTPClient.Timeout = opts.Timeout
	}

	var lim *rate.Limiter
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    rc,
		limiter: lim,
		logger:  logger,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// FetchListings issues one uncached GET against a URL built by apiquery.
// The int is the number of records that failed to decode on their own.
func (c *Client) FetchListings(ctx context.Context, listingsURL string) (*Result, int, error) {
	body, err := c.do(ctx, http.MethodGet, listingsURL, nil, "")
	if err != nil {
		return nil, 0, err
	}
	return DecodeResult(body)
}

func (c *Client) do(ctx context.Context, method, target string, payload any, token string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("backend rate limit: %w", err)
		}
	}

	var body any
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = b
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	b, err := ioReadAllLimit(resp.Body, maxBody)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(b, &eb)
		return nil, &APIError{Status: resp.StatusCode, Message: eb.Error}
	}
	return b, nil
}

func ioReadAllLimit(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errors.New("payload too large")
	}
	return b, nil
}
