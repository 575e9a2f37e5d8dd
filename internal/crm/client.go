package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"capgate/internal/api"
	"capgate/pkg/logging"
	textutil "capgate/pkg/strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "capgate/crm"

// maxErrorBody bounds how much of a failed response body is kept on APIError.
const maxErrorBody = 4096

// APIError is returned for any non-2xx CRM response.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("CRM %s %s returned %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("CRM %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL    string
	APIKey     string
	APIVersion string
	LocationID string
	Timeout    time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client performs authenticated calls against the CRM REST API.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	apiVersion string
	locationID string
	httpClient *http.Client
	tracer     trace.Tracer
}

// NewClient creates a CRM client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("CRM base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse CRM base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("CRM base URL %q must be absolute", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		apiVersion: cfg.APIVersion,
		locationID: cfg.LocationID,
		httpClient: httpClient,
		tracer:     otel.Tracer(tracerName),
	}, nil
}

// LocationID returns the default sub-account used when an operation's
// locationId argument is omitted.
func (c *Client) LocationID() string {
	return c.locationID
}

// Request is a single outbound CRM call.
type Request struct {
	Operation string
	Method    string
	// Path is relative to the base URL and already escaped.
	Path  string
	Query url.Values
	Body  interface{}
}

// Do executes req and converts the response into a tool result. Non-2xx
// responses are returned as *APIError.
func (c *Client) Do(ctx context.Context, req Request) (*api.CallToolResult, error) {
	ctx, span := c.tracer.Start(ctx, "crm."+req.Operation, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	requestID := uuid.NewString()
	span.SetAttributes(
		attribute.String("http.request.method", req.Method),
		attribute.String("url.path", req.Path),
		attribute.String("capgate.operation", req.Operation),
		attribute.String("capgate.request_id", requestID),
	)

	// req.Path is already escaped.
	target := c.baseURL.String() + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "encode body")
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return nil, fmt.Errorf("build CRM request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", requestID)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if c.apiVersion != "" {
		httpReq.Header.Set("Version", c.apiVersion)
	}

	logging.Debug("CRM", "%s %s (operation=%s, request_id=%s)", req.Method, req.Path, req.Operation, requestID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("CRM request %s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read body")
		return nil, fmt.Errorf("read CRM response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     req.Method,
			Path:       req.Path,
			Body:       textutil.Truncate(strings.TrimSpace(string(data)), maxErrorBody),
		}
		span.SetStatus(codes.Error, apiErr.Error())
		logging.Warn("CRM", "%s %s returned %d (request_id=%s)", req.Method, req.Path, resp.StatusCode, requestID)
		return nil, apiErr
	}

	return responseResult(resp.Header.Get("Content-Type"), data), nil
}

// responseResult passes a 2xx body through. JSON bodies become structured
// content, everything else text.
func responseResult(contentType string, data []byte) *api.CallToolResult {
	if len(bytes.TrimSpace(data)) == 0 {
		return api.TextResult("OK")
	}
	if strings.Contains(contentType, "json") || json.Valid(data) {
		var decoded interface{}
		if err := json.Unmarshal(data, &decoded); err == nil {
			return &api.CallToolResult{Content: []interface{}{decoded}}
		}
	}
	return api.TextResult(string(data))
}
