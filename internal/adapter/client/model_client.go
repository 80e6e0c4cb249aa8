package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
)

// PredictRequest represents a request to the model server
type PredictRequest struct {
	Features  *entity.FeatureVector `json:"features"`
	RequestID string                `json:"request_id,omitempty"`
}

// PredictResponse represents the response from the model server
type PredictResponse struct {
	Success      bool            `json:"success"`
	Label        entity.RawLabel `json:"label"`
	ModelVersion string          `json:"model_version"`
	RequestID    string          `json:"request_id,omitempty"`
}

// ModelClient is an HTTP client for an external model server
type ModelClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewModelClient creates a new model server client
func NewModelClient(baseURL string, timeout time.Duration) *ModelClient {
	return &ModelClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict sends a single feature vector for classification
func (c *ModelClient) Predict(ctx context.Context, vec *entity.FeatureVector, requestID string) (*PredictResponse, error) {
	var result PredictResponse
	if err := c.post(ctx, "/predict", PredictRequest{Features: vec, RequestID: requestID}, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, fmt.Errorf("model server rejected request")
	}
	return &result, nil
}

func (c *ModelClient) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("model server returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("model server returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Ready checks if the model server is ready
func (c *ModelClient) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ready", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model server not ready: status %d", resp.StatusCode)
	}

	return nil
}
