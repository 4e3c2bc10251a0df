package backend

import (
	"bytes"
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

	"shortdash/internal/models"
)

const (
	userAgent    = "Shortdash/1.0"
	maxBodyBytes = 1 << 20
)

// Endpoint names used in logs and metrics.
const (
	EndpointShorten       = "shorten"
	EndpointRename        = "update"
	EndpointStats         = "stats"
	EndpointDailyStats    = "stats_daily"
	EndpointListLinks     = "all"
	EndpointUpdateOrigURL = "update1"
	EndpointPing          = "ping"
)

// Outcomes reported to the Observer.
const (
	OutcomeOK         = "ok"
	OutcomeNetwork    = "network_error"
	OutcomeStatus     = "bad_status"
	OutcomeUnexpected = "unexpected_body"
)

// Origins holds the base URL each group of endpoints is served from.
type Origins struct {
	Shorten string // /shorten, /update/{code}
	Stats   string // /stats, /stats/daily
	Links   string // /all, /update1/{code}
}

// Observer is told about every finished request.
type Observer func(endpoint, outcome string, elapsed time.Duration)

// Client calls the URL-shortening backend. It performs exactly one attempt
// per call; retries are left to the user.
type Client struct {
	origins   Origins
	http      *http.Client
	log       *zap.SugaredLogger
	observe   Observer
	onFailure func(error)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithObserver registers a request observer, typically the metrics recorder.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observe = o }
}

// WithFailureHook registers a function called with every failed request,
// typically the error reporter.
func WithFailureHook(fn func(error)) Option {
	return func(c *Client) { c.onFailure = fn }
}

// New creates a backend client. timeout bounds every request.
func New(origins Origins, timeout time.Duration, log *zap.SugaredLogger, opts ...Option) *Client {
	c := &Client{
		origins: origins,
		http: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
		log:       log,
		observe:   func(string, string, time.Duration) {},
		onFailure: func(error) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Origins returns the configured origins.
func (c *Client) Origins() Origins {
	return c.origins
}

// call describes one backend request.
type call struct {
	endpoint string
	method   string
	origin   string
	path     string
	in       any
	out      any

	// confirm inspects the decoded body and returns a non-empty reason when
	// the field that confirms the operation is missing.
	confirm func() string
}

// do sends one JSON request and decodes a 2xx body into call.out. Any other
// outcome is returned as a *RequestError.
func (c *Client) do(ctx context.Context, cl call) error {
	start := time.Now()
	outcome, err := c.roundTrip(ctx, cl)
	elapsed := time.Since(start)

	c.observe(cl.endpoint, outcome, elapsed)
	if err != nil {
		c.log.Debugw("backend request failed",
			"endpoint", cl.endpoint, "method", cl.method, "path", cl.path,
			"outcome", outcome, "elapsed", elapsed, "error", err)
		c.onFailure(err)
		return err
	}

	c.log.Debugw("backend request", "endpoint", cl.endpoint, "method", cl.method, "path", cl.path, "elapsed", elapsed)
	return nil
}

func (c *Client) roundTrip(ctx context.Context, cl call) (string, error) {
	fail := func(status int, message string, err error) error {
		return &RequestError{Endpoint: cl.endpoint, Status: status, Message: message, Err: err}
	}

	var body io.Reader
	if cl.in != nil {
		payload, err := json.Marshal(cl.in)
		if err != nil {
			return OutcomeNetwork, fail(0, "", fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, trimOrigin(cl.origin)+cl.path, body)
	if err != nil {
		return OutcomeNetwork, fail(0, "", fmt.Errorf("build request: %w", err))
	}
	if cl.in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return OutcomeNetwork, fail(0, "", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return OutcomeNetwork, fail(resp.StatusCode, "", fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return OutcomeStatus, fail(resp.StatusCode, bodyMessage(data), errStatus)
	}

	if cl.out == nil {
		return OutcomeOK, nil
	}
	if err := json.Unmarshal(data, cl.out); err != nil {
		return OutcomeUnexpected, fail(resp.StatusCode, "", fmt.Errorf("%w: %v", ErrUnexpectedResponse, err))
	}
	if cl.confirm != nil {
		if reason := cl.confirm(); reason != "" {
			return OutcomeUnexpected, fail(resp.StatusCode, bodyMessage(data), fmt.Errorf("%w: %s", ErrUnexpectedResponse, reason))
		}
	}
	return OutcomeOK, nil
}

// bodyMessage extracts the error or message field of a JSON error body.
func bodyMessage(data []byte) string {
	var env models.MessageResponse
	if err := json.Unmarshal(data, &env); err != nil {
		return ""
	}
	if env.Error != "" {
		return env.Error
	}
	return env.Message
}

func trimOrigin(origin string) string {
	return strings.TrimRight(origin, "/")
}
