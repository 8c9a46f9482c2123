package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OpenRouter implements the Structurer interface against OpenRouter's
// chat-completions API
type OpenRouter struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewOpenRouter creates a new OpenRouter Structurer instance
func NewOpenRouter(apiKey string, baseURL string, modelName string) (*OpenRouter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openrouter api key is required")
	}
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	if modelName == "" {
		modelName = "meta-llama/llama-3.1-8b-instruct:free"
	}

	return &OpenRouter{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   modelName,
		client: &http.Client{
			Timeout: structuringTimeout,
		},
	}, nil
}

// chatRequest represents the request body for the chat-completions API
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse represents the chat-completion-shaped response
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// StructureItems sends the raw bill text to OpenRouter and parses the response
func (o *OpenRouter) StructureItems(ctx context.Context, rawText string) ([]LineItem, error) {
	ctx, cancel := context.WithTimeout(ctx, structuringTimeout)
	defer cancel()

	reqBody := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf(structuringPrompt, rawText)},
		},
		Temperature: 0.3,
		MaxTokens:   2000,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", o.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling openrouter API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("openrouter API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("empty openrouter response")
	}

	items, err := parseItemsJSON(chatResp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing structured items: %w", err)
	}

	return items, nil
}

// Close closes the OpenRouter client (no-op for HTTP client)
func (o *OpenRouter) Close() error {
	return nil
}
