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

// DefaultToxicityModel is the classification model served by the
// toxicity backend.
const DefaultToxicityModel = "unitary/toxic-bert"

// ToxicityScorer returns a toxicity score in [0,1] for a piece of text.
type ToxicityScorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// ToxicityClient calls a HuggingFace-style text-classification endpoint
// and extracts the score of the "toxic" label.
type ToxicityClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// ToxicityConfig configures the toxicity client.
type ToxicityConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewToxicityClient creates a new toxicity classification client.
func NewToxicityClient(cfg ToxicityConfig) *ToxicityClient {
	if cfg.Model == "" {
		cfg.Model = DefaultToxicityModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &ToxicityClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Score analyzes text and returns the score of the toxic label.
// Whitespace-only input scores 0 without a network call.
func (c *ToxicityClient) Score(ctx context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	body, err := json.Marshal(map[string]string{
		"inputs": text,
		"model":  c.model,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, apperrors.NewCustomError(apperrors.ErrProviderUnavailable,
			fmt.Sprintf("toxicity request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return 0, apperrors.NewCustomError(apperrors.ErrProviderUnavailable,
			fmt.Sprintf("toxicity backend returned %d: %s", resp.StatusCode, string(respBody)))
	}

	// The pipeline returns all label scores, e.g.
	// [[{"label":"toxic","score":0.98},{"label":"obscene","score":0.4}]]
	var out [][]struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, apperrors.NewCustomError(apperrors.ErrProviderUnavailable,
			fmt.Sprintf("failed to decode toxicity response: %v", err))
	}

	if len(out) == 0 {
		return 0, nil
	}
	for _, result := range out[0] {
		if strings.EqualFold(result.Label, "toxic") {
			return result.Score, nil
		}
	}
	return 0, nil
}
