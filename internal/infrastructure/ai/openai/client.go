// Package openai implements the recipe generation service against an
// OpenAI-compatible chat completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/tastebite/platform/internal/domain/recipe"
	"github.com/tastebite/platform/internal/infrastructure/config"
	"github.com/tastebite/platform/internal/ports/outbound"
)

// Client implements outbound.AIService using the chat completions API.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a new OpenAI client.
func NewClient(cfg *config.Config, logger *zap.Logger) outbound.AIService {
	return &Client{
		apiKey:      cfg.AI.OpenAIKey,
		baseURL:     strings.TrimRight(cfg.AI.BaseURL, "/"),
		model:       cfg.AI.OpenAIModel,
		maxTokens:   cfg.AI.MaxTokens,
		temperature: cfg.AI.Temperature,
		httpClient: &http.Client{
			Timeout: cfg.AI.RequestTimeout,
		},
		logger: logger.Named("openai-client"),
	}
}

// Disabled returns an AIService for deployments that run without recipe
// generation. Every call reports outbound.ErrAIGenerationDisabled.
func Disabled() outbound.AIService { return disabledService{} }

type disabledService struct{}

func (disabledService) GenerateFromIngredients(ctx context.Context, ingredients []string) (*outbound.GeneratedRecipe, error) {
	return nil, outbound.ErrAIGenerationDisabled
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// generatedPayload is the JSON shape the model is asked to produce.
type generatedPayload struct {
	Title        string `json:"title"`
	Category     string `json:"category"`
	Area         string `json:"area"`
	Ingredients  []struct {
		Name    string `json:"name"`
		Measure string `json:"measure"`
	} `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

const systemPrompt = `You are an expert chef. Create one practical recipe using the ingredients the user lists, adding only common pantry staples.

Respond with ONLY a valid JSON object in this exact format, no other text:
{
  "title": "Recipe Name",
  "category": "Dessert",
  "area": "Italian",
  "ingredients": [
    {"name": "flour", "measure": "200 g"}
  ],
  "instructions": [
    "First step.",
    "Second step."
  ]
}

Every measure must be a number followed by one of: g, kg, ml, l, tbsp, tsp, cup, oz, lb, piece, slice, whole.`

// GenerateFromIngredients asks the model for a recipe built around the
// given ingredients.
func (c *Client) GenerateFromIngredients(ctx context.Context, ingredients []string) (*outbound.GeneratedRecipe, error) {
	userPrompt := "Create a recipe using: " + strings.Join(ingredients, ", ")

	content, err := c.complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	return parseGenerated(content)
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	c.logger.Debug("Chat completion succeeded",
		zap.Int("prompt_tokens", chatResp.Usage.PromptTokens),
		zap.Int("completion_tokens", chatResp.Usage.CompletionTokens),
	)
	return chatResp.Choices[0].Message.Content, nil
}

// parseGenerated extracts the recipe JSON from the model output. Models
// occasionally wrap the object in prose or code fences, so parsing works
// on the outermost brace pair.
func parseGenerated(content string) (*outbound.GeneratedRecipe, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	var payload generatedPayload
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}
	if payload.Title == "" {
		return nil, fmt.Errorf("model response has no title")
	}

	generated := &outbound.GeneratedRecipe{
		Title:        payload.Title,
		Category:     payload.Category,
		Area:         payload.Area,
		Instructions: payload.Instructions,
	}
	for _, ing := range payload.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			continue
		}
		measure := ing.Measure
		if !recipe.ValidMeasure(measure) {
			measure = ""
		}
		generated.Ingredients = append(generated.Ingredients, recipe.Ingredient{
			Name:    ing.Name,
			Measure: measure,
		})
	}
	return generated, nil
}
