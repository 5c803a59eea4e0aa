// Package magento talks to a Magento 2 GraphQL endpoint.
//
// Client.Execute is the single transport primitive; the cart, customer,
// directory and catalog operations are typed wrappers around it. Every
// backend failure surfaces as *CommerceError and nothing is retried here.
package magento

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"magento-storefront/internal/metrics"
	"magento-storefront/internal/transport"
)

const (
	userAgent = "magento-storefront/1.0"

	// maxResponseBytes caps how much of a GraphQL response is read.
	maxResponseBytes = 8 << 20
)

// Config holds Magento client settings.
type Config struct {
	GraphQLURL string
	Timeout    time.Duration
	ChromeTLS  bool

	// BreakerFailures is the number of consecutive transport or 5xx failures
	// that opens the circuit. Zero disables the breaker.
	BreakerFailures uint32
	BreakerCooldown time.Duration

	Metrics *metrics.Commerce
	Logger  *slog.Logger

	// Transport overrides the upstream RoundTripper.
	Transport http.RoundTripper
}

// Client issues GraphQL operations against Magento.
type Client struct {
	httpClient *http.Client
	endpoint   string
	breaker    *gobreaker.CircuitBreaker
	metrics    *metrics.Commerce
	logger     *slog.Logger
}

// New creates a Magento client with the given configuration.
func New(cfg Config) (*Client, error) {
	if cfg.GraphQLURL == "" {
		return nil, fmt.Errorf("graphql URL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	rt := cfg.Transport
	if rt == nil {
		rt = transport.New(transport.Options{DialTimeout: cfg.Timeout, ChromeTLS: cfg.ChromeTLS})
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout, Transport: rt},
		endpoint:   cfg.GraphQLURL,
		metrics:    cfg.Metrics,
		logger:     logger,
	}

	if cfg.BreakerFailures > 0 {
		cooldown := cfg.BreakerCooldown
		if cooldown <= 0 {
			cooldown = 30 * time.Second
		}
		threshold := cfg.BreakerFailures
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "magento",
			MaxRequests: 1,
			Timeout:     cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("commerce circuit breaker state changed",
					"breaker", name, "from", from.String(), "to", to.String())
				c.metrics.SetBreakerState(breakerStateValue(to))
			},
		})
	}

	return c, nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// httpResult is a fully read upstream response.
type httpResult struct {
	status int
	body   []byte
}

// errServerStatus marks 5xx responses as breaker failures without turning
// them into transport errors.
var errServerStatus = errors.New("server error status")

// Execute runs one GraphQL operation and returns its data payload. The token,
// when non-empty, is sent as a Bearer credential.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any, token string) (json.RawMessage, error) {
	op := operationName(query)
	start := time.Now()

	data, err := c.roundTrip(ctx, query, variables, token)

	elapsed := time.Since(start)
	c.metrics.ObserveRequest(op, elapsed, err)
	if err != nil {
		c.logger.DebugContext(ctx, "commerce request failed",
			"operation", op,
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
	} else {
		c.logger.DebugContext(ctx, "commerce request",
			"operation", op,
			"duration_ms", elapsed.Milliseconds(),
		)
	}
	return data, err
}

// execute runs an operation and decodes its data payload into out.
func (c *Client) execute(ctx context.Context, query string, variables map[string]any, token string, out any) error {
	data, err := c.Execute(ctx, query, variables, token)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s data: %w", operationName(query), err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, query string, variables map[string]any, token string) (json.RawMessage, error) {
	if variables == nil {
		variables = map[string]any{}
	}
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encoding graphql request: %w", err)
	}

	res, err := c.post(ctx, payload, token)
	if err != nil {
		return nil, &CommerceError{
			Message: fmt.Sprintf("GraphQL request failed: %v", err),
			Err:     err,
		}
	}

	if res.status < 200 || res.status > 299 {
		return nil, &CommerceError{
			Message:    fmt.Sprintf("GraphQL request failed with status %d", res.status),
			StatusCode: res.status,
		}
	}

	var parsed graphQLResponse
	if err := json.Unmarshal(res.body, &parsed); err != nil {
		return nil, &CommerceError{
			Message: "GraphQL response was not valid JSON",
			Err:     err,
		}
	}

	if len(parsed.Errors) > 0 {
		return nil, newGraphQLError(parsed.Errors)
	}

	if len(parsed.Data) == 0 || bytes.Equal(bytes.TrimSpace(parsed.Data), []byte("null")) {
		return nil, &CommerceError{Message: "GraphQL response did not contain data"}
	}

	return parsed.Data, nil
}

// post sends the request through the breaker when one is configured.
func (c *Client) post(ctx context.Context, payload []byte, token string) (*httpResult, error) {
	if c.breaker == nil {
		return c.do(ctx, payload, token)
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		res, err := c.do(ctx, payload, token)
		if err != nil {
			return nil, err
		}
		if res.status >= 500 {
			return res, errServerStatus
		}
		return res, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("commerce backend unavailable: %w", err)
	}
	if err != nil && !errors.Is(err, errServerStatus) {
		return nil, err
	}
	res, ok := out.(*httpResult)
	if !ok {
		return nil, fmt.Errorf("unexpected breaker result %T", out)
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, payload []byte, token string) (*httpResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return &httpResult{status: resp.StatusCode, body: body}, nil
}

func newGraphQLError(errs []graphQLError) *CommerceError {
	ce := &CommerceError{}
	for _, e := range errs {
		msg := strings.TrimSpace(e.Message)
		if msg == "" {
			msg = "Unknown error"
		}
		ce.Messages = append(ce.Messages, msg)
		if cat, ok := e.Extensions["category"].(string); ok && cat != "" {
			ce.Categories = append(ce.Categories, cat)
		}
	}
	ce.Message = strings.Join(ce.Messages, "; ")
	return ce
}

// operationName extracts the name from "query Name(...)" or "mutation Name {".
// Anonymous operations report "anonymous".
func operationName(query string) string {
	fields := strings.Fields(query)
	for i := 0; i+1 < len(fields); i++ {
		if fields[i] != "query" && fields[i] != "mutation" {
			continue
		}
		name := fields[i+1]
		if j := strings.IndexAny(name, "({"); j >= 0 {
			name = name[:j]
		}
		if name != "" {
			return name
		}
		break
	}
	return "anonymous"
}

func breakerStateValue(s gobreaker.State) int {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
