package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrNoAPIKey is returned when the client was constructed without a key;
// callers treat it like any other upstream failure and degrade.
var ErrNoAPIKey = errors.New("deepseek API key not configured")

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client calls the DeepSeek chat-completion API for treatment text.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewClient creates a new DeepSeek client. An empty apiKey yields a client
// whose calls fail fast with ErrNoAPIKey.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		rateLimiter: rate.NewLimiter(rate.Limit(1), 2),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// TreatmentRecommendation asks the model for a structured recommendation
// for the given disease and crop. The response is free-form text with the
// section headers the enrichment parser recognizes.
func (c *Client) TreatmentRecommendation(ctx context.Context, diseaseName, cropType string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	prompt := fmt.Sprintf(
		"Provide information about the plant disease %q affecting %s crops. "+
			"Structure the answer with these exact section headers: "+
			"\"Disease Information:\" followed by a short description, "+
			"\"Treatment Recommendations:\" followed by a numbered list, and "+
			"\"Prevention Measures:\" followed by a numbered list.",
		diseaseName, cropType,
	)

	reqBody, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are an agricultural expert assistant."},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", errors.New("empty completion response")
	}

	return chat.Choices[0].Message.Content, nil
}
