// Package ai contains HTTP clients for the external inference services
// the platform depends on: text embeddings and toxicity classification.
// Both calls sit on the request's critical path, so they are bounded by
// a timeout and fail fast without retrying.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/retrieverhq/retriever-study/internal/pkg/apperrors"
)

// DefaultEmbeddingModel mirrors the model served by the embedding
// backend. all-MiniLM-L6-v2 produces 384-dimension vectors.
const DefaultEmbeddingModel = "sentence-transformers/all-MiniLM-L6-v2"

// Embedder converts free text into a fixed-length embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// EmbeddingClient is an OpenAI-compatible embeddings client.
type EmbeddingClient struct {
	baseURL   string
	apiKey    string
	model     string
	dimension int
	client    *http.Client
}

// EmbeddingConfig configures the embeddings client.
type EmbeddingConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewEmbeddingClient creates a new embeddings client using the provided
// configuration.
func NewEmbeddingClient(cfg EmbeddingConfig) *EmbeddingClient {
	if cfg.Model == "" {
		cfg.Model = DefaultEmbeddingModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &EmbeddingClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Dimension returns the dimensionality of the produced vectors, known
// after the first successful Embed call.
func (c *EmbeddingClient) Dimension() int { return c.dimension }

// Embed returns an embedding vector for the given text. Empty input is
// rejected before any network call.
func (c *EmbeddingClient) Embed(ctx context.Context, text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("cannot embed empty text")
	}

	body, err := json.Marshal(map[string]string{
		"input": text,
		"model": c.model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrProviderUnavailable,
			fmt.Sprintf("embedding request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return nil, apperrors.NewCustomError(apperrors.ErrProviderUnavailable,
			fmt.Sprintf("embedding backend returned %s", resp.Status))
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding request rejected (status %d): %s", resp.StatusCode, string(respBody))
	}

	var out struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrProviderUnavailable,
			fmt.Sprintf("failed to decode embedding response: %v", err))
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrProviderUnavailable,
			"embedding response contained no vector")
	}

	v := out.Data[0].Embedding
	if c.dimension == 0 {
		c.dimension = len(v)
	}
	return v, nil
}
