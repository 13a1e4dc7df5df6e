package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pantry-guardian/backend/internal/utils"
)

const recipeSystemPrompt = "You are a kind and helpful assistant that generates a recipe using the provided " +
	"ingredients. However, no need to include all the ingredients, but don't include any " +
	"ingredients that are not in the list (except for basics that you can assume can be " +
	"found in any home). Ignore emojis in the ingredients list. Produce your response in " +
	"Markdown format."

type (
	// OpenAIClient calls the chat completions endpoint directly; the request
	// shape is small enough that an SDK is not worth the dependency.
	OpenAIClient struct {
		BaseURL string
		APIKey  string
		Model   string
		Client  *http.Client
	}

	chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	chatCompletionRequest struct {
		Model    string        `json:"model"`
		Messages []chatMessage `json:"messages"`
	}

	chatCompletionResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
)

func NewOpenAIClient() *OpenAIClient {
	return &OpenAIClient{
		BaseURL: utils.GetConfig("OPENAI_BASE_URL"),
		APIKey:  utils.GetConfig("OPENAI_API_KEY"),
		Model:   utils.GetConfig("OPENAI_MODEL"),
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// GenerateRecipe asks the model for a Markdown recipe built from the
// ingredient list. The ingredients are sent as one comma-separated user
// message.
func (c *OpenAIClient) GenerateRecipe(ctx context.Context, ingredients string) (string, error) {
	payload, err := json.Marshal(chatCompletionRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: recipeSystemPrompt},
			{Role: "user", Content: ingredients},
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1/chat/completions", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion returned status %s", resp.Status)
	}

	var body chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("unable to parse chat completion response: %w", err)
	}
	if len(body.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return body.Choices[0].Message.Content, nil
}
