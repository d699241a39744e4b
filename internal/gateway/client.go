// Package gateway is the typed client for the Kolik backend API. It
// owns the HTTP plumbing shared by every endpoint wrapper: cookie
// handling happens implicitly through the client's jar, mutating
// requests carry the double-submit CSRF header, and each round trip is
// traced and logged.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"kolikctl/internal/apierr"
	"kolikctl/internal/domain"
)

// maxErrorBody bounds how much of an error payload is read for
// normalization.
const maxErrorBody = 1 << 20

// Client performs JSON round trips against the backend. It is safe for
// concurrent use.
type Client struct {
	base       *url.URL
	httpc      *http.Client
	tokens     domain.TokenSource
	csrfHeader string
	tracer     trace.Tracer
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCSRFHeader overrides the header carrying the anti-forgery token.
func WithCSRFHeader(name string) Option {
	return func(c *Client) { c.csrfHeader = name }
}

// WithLogger overrides the client's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a backend client. httpc must carry the cookie jar
// shared with the CSRF provisioner; tokens resolves the anti-forgery
// token before any mutating request is issued.
func NewClient(httpc *http.Client, base *url.URL, tokens domain.TokenSource, opts ...Option) *Client {
	c := &Client{
		base:       base,
		httpc:      httpc,
		tokens:     tokens,
		csrfHeader: "X-CSRFToken",
		tracer:     otel.Tracer("kolikctl/gateway"),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a read-only round trip. No CSRF token is attached.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, false)
}

// Post performs a state-mutating round trip. The CSRF token is
// resolved and attached before the request is issued; a token that
// cannot be obtained fails the call without touching the network.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, true)
}

// endpoint resolves path against the configured base URL, keeping the
// base path prefix and the endpoint's trailing slash.
func (c *Client) endpoint(path string) string {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	return u.String()
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, mutating bool) error {
	ctx, span := c.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
	defer span.End()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	if mutating {
		token, err := c.tokens.EnsureToken(ctx)
		if err != nil {
			span.SetStatus(codes.Error, "csrf token unavailable")
			span.RecordError(err)
			return err
		}
		req.Header.Set(c.csrfHeader, token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, "transport failure")
		span.RecordError(err)
		c.logger.ErrorContext(ctx, "request failed",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err)
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.logger.DebugContext(ctx, "request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"latency_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
		return apierr.New(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		span.SetStatus(codes.Error, "malformed response body")
		span.RecordError(err)
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
