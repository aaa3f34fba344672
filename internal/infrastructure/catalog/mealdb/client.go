// Package mealdb implements the external recipe catalog client against
// the TheMealDB JSON API.
package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tastebite/platform/internal/domain/recipe"
	"github.com/tastebite/platform/internal/infrastructure/config"
	"github.com/tastebite/platform/internal/ports/outbound"
)

// maxIngredientSlots is the number of strIngredientN/strMeasureN column
// pairs the API exposes per recipe.
const maxIngredientSlots = 20

// Client implements outbound.CatalogClient over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new catalog client.
func NewClient(cfg *config.Config, logger *zap.Logger) outbound.CatalogClient {
	return &Client{
		baseURL: strings.TrimRight(cfg.Catalog.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Catalog.RequestTimeout,
		},
		logger: logger.Named("mealdb-client"),
	}
}

// API payload shapes. Every endpoint wraps its results in a "meals" array
// and returns a JSON null body for empty result sets.

type mealPayload struct {
	ID       string `json:"idMeal"`
	Title    string `json:"strMeal"`
	Category string `json:"strCategory"`
	Area     string `json:"strArea"`
	Thumb    string `json:"strMealThumb"`

	Instructions string `json:"strInstructions"`
}

type mealsEnvelope struct {
	Meals []json.RawMessage `json:"meals"`
}

type categoriesEnvelope struct {
	Categories []struct {
		Name        string `json:"strCategory"`
		Thumb       string `json:"strCategoryThumb"`
		Description string `json:"strCategoryDescription"`
	} `json:"categories"`
}

type areasEnvelope struct {
	Meals []struct {
		Area string `json:"strArea"`
	} `json:"meals"`
}

// Search finds catalog recipes whose name matches the term.
func (c *Client) Search(ctx context.Context, term string) ([]recipe.Summary, error) {
	return c.fetchSummaries(ctx, "/search.php?s="+url.QueryEscape(term))
}

// FilterByCategory lists catalog recipes in one category.
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]recipe.Summary, error) {
	return c.fetchSummaries(ctx, "/filter.php?c="+url.QueryEscape(category))
}

// FilterByArea lists catalog recipes from one area.
func (c *Client) FilterByArea(ctx context.Context, area string) ([]recipe.Summary, error) {
	return c.fetchSummaries(ctx, "/filter.php?a="+url.QueryEscape(area))
}

// Categories lists every catalog category.
func (c *Client) Categories(ctx context.Context) ([]outbound.CatalogCategory, error) {
	body, err := c.get(ctx, "/categories.php")
	if err != nil {
		return nil, err
	}

	var envelope categoriesEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	categories := make([]outbound.CatalogCategory, len(envelope.Categories))
	for i, cat := range envelope.Categories {
		categories[i] = outbound.CatalogCategory{
			Name:        cat.Name,
			ImageURL:    cat.Thumb,
			Description: cat.Description,
		}
	}
	return categories, nil
}

// Areas lists every catalog area name.
func (c *Client) Areas(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/list.php?a=list")
	if err != nil {
		return nil, err
	}

	var envelope areasEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode areas: %w", err)
	}

	areas := make([]string, 0, len(envelope.Meals))
	for _, m := range envelope.Meals {
		if m.Area != "" {
			areas = append(areas, m.Area)
		}
	}
	return areas, nil
}

// Lookup fetches the full detail of one catalog recipe. A missing id
// returns (nil, nil).
func (c *Client) Lookup(ctx context.Context, id string) (*outbound.CatalogRecipe, error) {
	body, err := c.get(ctx, "/lookup.php?i="+url.QueryEscape(id))
	if err != nil {
		return nil, err
	}

	raws, err := decodeMeals(body)
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, nil
	}

	var meal mealPayload
	if err := json.Unmarshal(raws[0], &meal); err != nil {
		return nil, fmt.Errorf("decode meal: %w", err)
	}

	detail := &outbound.CatalogRecipe{
		ID:           meal.ID,
		Title:        meal.Title,
		Category:     meal.Category,
		Area:         meal.Area,
		ImageURL:     meal.Thumb,
		Ingredients:  ingredientPairs(raws[0]),
		Instructions: splitInstructions(meal.Instructions),
	}
	return detail, nil
}

func (c *Client) fetchSummaries(ctx context.Context, path string) ([]recipe.Summary, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	raws, err := decodeMeals(body)
	if err != nil {
		return nil, err
	}

	summaries := make([]recipe.Summary, 0, len(raws))
	for _, raw := range raws {
		var meal mealPayload
		if err := json.Unmarshal(raw, &meal); err != nil {
			return nil, fmt.Errorf("decode meal: %w", err)
		}
		summaries = append(summaries, recipe.Summary{
			ID:         meal.ID,
			Title:      meal.Title,
			Category:   meal.Category,
			Area:       meal.Area,
			ImageURL:   meal.Thumb,
			External:   true,
			ExternalID: meal.ID,
		})
	}
	return summaries, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}

	c.logger.Debug("Catalog request",
		zap.String("path", path),
		zap.Duration("duration", time.Since(start)),
	)
	return body, nil
}

// decodeMeals unwraps the meals envelope. The API answers empty result
// sets with {"meals": null}.
func decodeMeals(body []byte) ([]json.RawMessage, error) {
	var envelope mealsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	return envelope.Meals, nil
}

// ingredientPairs reads the numbered strIngredientN/strMeasureN columns.
// Slots with a blank name are skipped.
func ingredientPairs(raw json.RawMessage) []recipe.Ingredient {
	var fields map[string]*string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}

	str := func(key string) string {
		if v := fields[key]; v != nil {
			return strings.TrimSpace(*v)
		}
		return ""
	}

	var ingredients []recipe.Ingredient
	for i := 1; i <= maxIngredientSlots; i++ {
		name := str(fmt.Sprintf("strIngredient%d", i))
		if name == "" {
			continue
		}
		ingredients = append(ingredients, recipe.Ingredient{
			Name:    name,
			Measure: str(fmt.Sprintf("strMeasure%d", i)),
		})
	}
	return ingredients
}

// splitInstructions breaks the instruction blob into steps on newlines.
func splitInstructions(blob string) []string {
	var steps []string
	for _, line := range strings.Split(blob, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}
