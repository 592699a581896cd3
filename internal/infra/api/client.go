// Package api provides the single chokepoint through which all CRM
// server communication passes: it attaches the bearer credential,
// normalizes every failure into domain.APIError, and tears down the
// session on authentication failure.
package api

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/vantagecrm/crm-client-go/internal/domain"
	"github.com/vantagecrm/crm-client-go/internal/infra/observability"
	"github.com/vantagecrm/crm-client-go/internal/port"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("api")

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration

	Tokens port.TokenStore

	// OnAuthFailure runs after a 401 response has cleared the token
	// store. The presentation layer injects its redirect here; tests
	// inject a probe. May be nil.
	OnAuthFailure func()

	Metrics *observability.Metrics
	Logger  *zap.Logger
}

// Client wraps all HTTP calls to the CRM API.
// It never retries: retry and backoff are a caller concern.
type Client struct {
	rc            *resty.Client
	tokens        port.TokenStore
	onAuthFailure func()
	metrics       *observability.Metrics
	logger        *zap.Logger
}

// New creates a Client. Requests carry JSON content type, a 30s default
// timeout and a per-request X-Request-ID.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	c := &Client{
		tokens:        opts.Tokens,
		onAuthFailure: opts.OnAuthFailure,
		metrics:       opts.Metrics,
		logger:        opts.Logger,
	}

	rc := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	// Request hook: attach the bearer credential when one is present.
	rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if cred := c.tokens.Get(); cred != nil {
			req.SetAuthToken(cred.AccessToken)
		}
		req.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})

	c.rc = rc
	return c
}

// Get issues a GET request and decodes the response body into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, resty.MethodGet, path, query, nil, out)
}

// Post issues a POST request and decodes the response body into out.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, resty.MethodPost, path, query, body, out)
}

// Put issues a PUT request and decodes the response body into out.
func (c *Client) Put(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, resty.MethodPut, path, query, body, out)
}

// Patch issues a PATCH request and decodes the response body into out.
func (c *Client) Patch(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, resty.MethodPatch, path, query, body, out)
}

// Delete issues a DELETE request. out may be nil.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, resty.MethodDelete, path, nil, nil, out)
}

// serverError is the error body shape the CRM API returns.
type serverError struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// do executes one request. Response handling, including the 401
// teardown, happens-before the result is delivered to the caller.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, span := tracer.Start(ctx, method+" "+path)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	)

	req := c.rc.R().SetContext(ctx)
	for k, vs := range query {
		for _, v := range vs {
			req.SetQueryParam(k, v)
		}
	}
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)

	if err != nil {
		c.metrics.RecordRequest(method, "error", time.Since(start))
		c.logger.Error("api: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return &domain.APIError{
			Message: transportMessage(err),
			Status:  500,
		}
	}

	if resp.IsError() {
		c.metrics.RecordRequest(method, "error", time.Since(start))
		apiErr := normalize(resp)

		if apiErr.IsAuthFailure() {
			// Global session teardown: visible to the whole
			// application, not just the failing call.
			c.tokens.Clear()
			c.metrics.IncrAuthFailure()
			c.logger.Warn("api: authentication failure, session cleared",
				zap.String("method", method),
				zap.String("path", path),
			)
			if c.onAuthFailure != nil {
				c.onAuthFailure()
			}
		} else {
			c.logger.Warn("api: non-2xx response",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", resp.StatusCode()),
			)
		}
		return apiErr
	}

	c.metrics.RecordRequest(method, "success", time.Since(start))
	c.logger.Debug("api: request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode()),
	)
	return nil
}

// normalize converts a non-2xx response into an APIError, preferring a
// server-supplied detail field over the generic fallback.
func normalize(resp *resty.Response) *domain.APIError {
	apiErr := &domain.APIError{
		Message: "An unexpected error occurred",
		Status:  resp.StatusCode(),
	}

	var se serverError
	if err := json.Unmarshal(resp.Body(), &se); err == nil {
		switch {
		case se.Detail != "":
			apiErr.Message = se.Detail
			apiErr.Detail = se.Detail
		case se.Message != "":
			apiErr.Message = se.Message
		}
	}
	return apiErr
}

// transportMessage keeps the transport error text when available.
func transportMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "An unexpected error occurred"
	}
	return err.Error()
}
