// Package inference orchestrates ML analysis: it assembles feature payloads
// from user data and calls the external model inference service.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Client is the HTTP client for the model inference service. Calls are rate
// limited to protect the service from request bursts.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates an inference client. requestsPerSecond bounds the call
// rate; zero or negative disables the limit.
func NewClient(log *slog.Logger, baseURL string, timeout time.Duration, requestsPerSecond float64) *Client {
	if log == nil {
		log = slog.Default()
	}
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, 1),
		logger:  log.With(slog.String("component", "inference_client")),
	}
}

// Analyze posts a feature payload to the named model endpoint and decodes the
// result.
func (c *Client) Analyze(ctx context.Context, modelName string, req FeatureRequest) (Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Result{}, &ModelOperationError{Op: "rate wait", Err: err}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, &ModelOperationError{Op: "encode request", Err: err}
	}

	endpoint := c.baseURL + "/" + modelName
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, &ModelOperationError{Op: "build request", Err: err}
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("calling inference service",
		slog.String("model", modelName),
		slog.String("request_id", requestID),
	)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Result{}, &ModelOperationError{Op: "call " + modelName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{}, &ModelOperationError{
			Op:  "call " + modelName,
			Err: fmt.Errorf("inference service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))),
		}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, &ModelOperationError{Op: "decode response", Err: err}
	}
	return result, nil
}
