package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tastebite/platform/internal/infrastructure/config"
	"github.com/tastebite/platform/internal/ports/outbound"
)

func TestDisabled(t *testing.T) {
	_, err := Disabled().GenerateFromIngredients(context.Background(), []string{"rice"})

	assert.ErrorIs(t, err, outbound.ErrAIGenerationDisabled)
}

func TestParseGenerated(t *testing.T) {
	t.Run("PlainJSON_IsParsed", func(t *testing.T) {
		generated, err := parseGenerated(`{
			"title": "Mushroom Risotto",
			"category": "Vegetarian",
			"area": "Italian",
			"ingredients": [{"name": "Arborio rice", "measure": "300g"}],
			"instructions": ["Toast the rice.", "Add stock gradually."]
		}`)

		require.NoError(t, err)
		assert.Equal(t, "Mushroom Risotto", generated.Title)
		require.Len(t, generated.Ingredients, 1)
		assert.Equal(t, "300g", generated.Ingredients[0].Measure)
		assert.Len(t, generated.Instructions, 2)
	})

	t.Run("CodeFencedJSON_IsStillParsed", func(t *testing.T) {
		generated, err := parseGenerated("Here you go:\n```json\n{\"title\": \"Toast\", \"ingredients\": [], \"instructions\": [\"Toast it.\"]}\n```")

		require.NoError(t, err)
		assert.Equal(t, "Toast", generated.Title)
	})

	t.Run("InvalidMeasure_IsBlankedNotRejected", func(t *testing.T) {
		generated, err := parseGenerated(`{
			"title": "Soup",
			"ingredients": [{"name": "Salt", "measure": "a pinch"}],
			"instructions": ["Simmer."]
		}`)

		require.NoError(t, err)
		require.Len(t, generated.Ingredients, 1)
		assert.Empty(t, generated.Ingredients[0].Measure)
	})

	t.Run("BlankIngredientNames_AreSkipped", func(t *testing.T) {
		generated, err := parseGenerated(`{
			"title": "Soup",
			"ingredients": [{"name": " ", "measure": "100g"}, {"name": "Leek", "measure": "1"}],
			"instructions": ["Simmer."]
		}`)

		require.NoError(t, err)
		require.Len(t, generated.Ingredients, 1)
		assert.Equal(t, "Leek", generated.Ingredients[0].Name)
	})

	t.Run("MissingTitle_ReturnsError", func(t *testing.T) {
		_, err := parseGenerated(`{"ingredients": [], "instructions": []}`)

		assert.Error(t, err)
	})

	t.Run("NoJSONObject_ReturnsError", func(t *testing.T) {
		_, err := parseGenerated("I cannot help with that.")

		assert.Error(t, err)
	})
}

func TestGenerateFromIngredients(t *testing.T) {
	recipeJSON := `{"title": "Mushroom Risotto", "category": "Vegetarian", "area": "Italian",
		"ingredients": [{"name": "Arborio rice", "measure": "300g"}],
		"instructions": ["Toast the rice.", "Add stock gradually."]}`

	t.Run("Success_RoundTripsThroughTheAPI", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req chatCompletionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Messages, 2)
			assert.Contains(t, req.Messages[1].Content, "rice, mushrooms")

			json.NewEncoder(w).Encode(map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]string{"role": "assistant", "content": recipeJSON}},
				},
			})
		}))
		defer srv.Close()

		cfg := &config.Config{}
		cfg.AI.OpenAIKey = "test-key"
		cfg.AI.BaseURL = srv.URL
		cfg.AI.OpenAIModel = "gpt-4o-mini"
		cfg.AI.MaxTokens = 512
		cfg.AI.RequestTimeout = 5 * time.Second
		client := NewClient(cfg, zap.NewNop())

		generated, err := client.GenerateFromIngredients(context.Background(), []string{"rice", "mushrooms"})

		require.NoError(t, err)
		assert.Equal(t, "Mushroom Risotto", generated.Title)
	})

	t.Run("APIError_IsPropagated", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
		}))
		defer srv.Close()

		cfg := &config.Config{}
		cfg.AI.BaseURL = srv.URL
		cfg.AI.RequestTimeout = 5 * time.Second
		client := NewClient(cfg, zap.NewNop())

		_, err := client.GenerateFromIngredients(context.Background(), []string{"rice"})

		assert.Error(t, err)
	})
}
