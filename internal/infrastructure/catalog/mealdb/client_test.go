package mealdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tastebite/platform/internal/infrastructure/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Catalog.BaseURL = srv.URL
	cfg.Catalog.RequestTimeout = 5 * time.Second
	return NewClient(cfg, zap.NewNop()).(*Client)
}

func TestSearch(t *testing.T) {
	t.Run("Results_AreMappedToExternalSummaries", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search.php", r.URL.Path)
			assert.Equal(t, "chicken", r.URL.Query().Get("s"))
			w.Write([]byte(`{"meals": [
				{"idMeal": "52772", "strMeal": "Teriyaki Chicken Casserole",
				 "strCategory": "Chicken", "strArea": "Japanese",
				 "strMealThumb": "https://example.test/52772.jpg"}
			]}`))
		})

		summaries, err := client.Search(context.Background(), "chicken")

		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "52772", summaries[0].ID)
		assert.Equal(t, "52772", summaries[0].ExternalID)
		assert.True(t, summaries[0].External)
		assert.Equal(t, "Teriyaki Chicken Casserole", summaries[0].Title)
		assert.Equal(t, "Chicken", summaries[0].Category)
		assert.Equal(t, "Japanese", summaries[0].Area)
	})

	t.Run("NullMeals_MeansEmptyResultSet", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"meals": null}`))
		})

		summaries, err := client.Search(context.Background(), "zzz")

		require.NoError(t, err)
		assert.Empty(t, summaries)
	})

	t.Run("Non200Status_ReturnsError", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.Search(context.Background(), "chicken")

		assert.Error(t, err)
	})

	t.Run("MalformedBody_ReturnsError", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>not json</html>`))
		})

		_, err := client.Search(context.Background(), "chicken")

		assert.Error(t, err)
	})
}

func TestFilters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/filter.php", r.URL.Path)
		switch {
		case r.URL.Query().Get("c") == "Seafood":
			w.Write([]byte(`{"meals": [{"idMeal": "52819", "strMeal": "Cajun Spiced Fish"}]}`))
		case r.URL.Query().Get("a") == "Canadian":
			w.Write([]byte(`{"meals": [{"idMeal": "52804", "strMeal": "Poutine"}]}`))
		default:
			w.Write([]byte(`{"meals": null}`))
		}
	})

	byCategory, err := client.FilterByCategory(context.Background(), "Seafood")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Cajun Spiced Fish", byCategory[0].Title)

	byArea, err := client.FilterByArea(context.Background(), "Canadian")
	require.NoError(t, err)
	require.Len(t, byArea, 1)
	assert.Equal(t, "Poutine", byArea[0].Title)
}

func TestCategories(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/categories.php", r.URL.Path)
		w.Write([]byte(`{"categories": [
			{"strCategory": "Beef", "strCategoryThumb": "https://example.test/beef.png",
			 "strCategoryDescription": "Beef is the culinary name for meat from cattle."}
		]}`))
	})

	categories, err := client.Categories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Beef", categories[0].Name)
	assert.Equal(t, "https://example.test/beef.png", categories[0].ImageURL)
	assert.NotEmpty(t, categories[0].Description)
}

func TestAreas(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/list.php", r.URL.Path)
		assert.Equal(t, "list", r.URL.Query().Get("a"))
		w.Write([]byte(`{"meals": [{"strArea": "British"}, {"strArea": ""}, {"strArea": "Canadian"}]}`))
	})

	areas, err := client.Areas(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"British", "Canadian"}, areas, "blank area rows are dropped")
}

func TestLookup(t *testing.T) {
	t.Run("FullDetail_IncludesIngredientSlotsAndSteps", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/lookup.php", r.URL.Path)
			assert.Equal(t, "52772", r.URL.Query().Get("i"))
			w.Write([]byte(`{"meals": [{
				"idMeal": "52772", "strMeal": "Teriyaki Chicken Casserole",
				"strCategory": "Chicken", "strArea": "Japanese",
				"strMealThumb": "https://example.test/52772.jpg",
				"strInstructions": "Preheat oven to 350F.\r\nCook the rice.\r\n\r\nCombine and bake.",
				"strIngredient1": "soy sauce", "strMeasure1": "3 tbsp",
				"strIngredient2": "water", "strMeasure2": "100ml",
				"strIngredient3": "", "strMeasure3": "",
				"strIngredient4": null, "strMeasure4": null,
				"strIngredient5": "rice", "strMeasure5": "3 cup"
			}]}`))
		})

		detail, err := client.Lookup(context.Background(), "52772")

		require.NoError(t, err)
		require.NotNil(t, detail)
		assert.Equal(t, "52772", detail.ID)
		assert.Equal(t, "Teriyaki Chicken Casserole", detail.Title)

		require.Len(t, detail.Ingredients, 3, "blank and null slots are skipped")
		assert.Equal(t, "soy sauce", detail.Ingredients[0].Name)
		assert.Equal(t, "3 tbsp", detail.Ingredients[0].Measure)
		assert.Equal(t, "rice", detail.Ingredients[2].Name)

		assert.Equal(t, []string{
			"Preheat oven to 350F.",
			"Cook the rice.",
			"Combine and bake.",
		}, detail.Instructions)
	})

	t.Run("UnknownID_ReturnsNilWithoutError", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"meals": null}`))
		})

		detail, err := client.Lookup(context.Background(), "99999")

		require.NoError(t, err)
		assert.Nil(t, detail)
	})
}
