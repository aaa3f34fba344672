// Package outbound defines the interfaces for outbound ports (secondary or
// driven adapters): persistence, caching, and the external services the
// application consumes.
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tastebite/platform/internal/domain/recipe"
	"github.com/tastebite/platform/internal/domain/shoppinglist"
	"github.com/tastebite/platform/internal/domain/user"
)

// RecipeRepository defines the interface for local recipe persistence.
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	Update(ctx context.Context, r *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)

	// FindAll returns every recipe visible in browse results.
	FindAll(ctx context.Context) ([]*recipe.Recipe, error)
	FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]*recipe.Recipe, error)
	FindByExternalID(ctx context.Context, externalID string) (*recipe.Recipe, error)

	// Favorites are tracked per (recipe, user) pair.
	AddFavorite(ctx context.Context, recipeID, userID uuid.UUID) error
	RemoveFavorite(ctx context.Context, recipeID, userID uuid.UUID) error
	IsFavorite(ctx context.Context, recipeID, userID uuid.UUID) (bool, error)
	FindFavorites(ctx context.Context, userID uuid.UUID) ([]*recipe.Recipe, error)
}

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindAll(ctx context.Context) ([]*user.User, error)
}

// ShoppingListRepository defines the interface for shopping list persistence.
// Save persists the full list state, items included.
type ShoppingListRepository interface {
	Save(ctx context.Context, l *shoppinglist.List) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*shoppinglist.List, error)
	FindByShareToken(ctx context.Context, token string) (*shoppinglist.List, error)
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CatalogCategory is one category listed by the external catalog.
type CatalogCategory struct {
	Name        string `json:"name"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description,omitempty"`
}

// CatalogRecipe is the full detail of one external catalog recipe, used
// when importing it into the local store.
type CatalogRecipe struct {
	ID           string
	Title        string
	Category     string
	Area         string
	ImageURL     string
	Ingredients  []recipe.Ingredient
	Instructions []string
}

// CatalogClient defines the interface to the external recipe catalog.
// Implementations map the catalog's own field names to the normalized
// Summary shape before returning.
type CatalogClient interface {
	Search(ctx context.Context, term string) ([]recipe.Summary, error)
	FilterByCategory(ctx context.Context, category string) ([]recipe.Summary, error)
	FilterByArea(ctx context.Context, area string) ([]recipe.Summary, error)
	Categories(ctx context.Context) ([]CatalogCategory, error)
	Areas(ctx context.Context) ([]string, error)
	Lookup(ctx context.Context, id string) (*CatalogRecipe, error)
}

// GeneratedRecipe is the AI service's response to a generation request.
type GeneratedRecipe struct {
	Title        string
	Category     string
	Area         string
	Ingredients  []recipe.Ingredient
	Instructions []string
}

// ErrAIGenerationDisabled is reported by AIService implementations when
// the deployment runs with recipe generation switched off.
var ErrAIGenerationDisabled = errors.New("recipe generation is disabled")

// AIService defines the interface for AI recipe generation.
type AIService interface {
	GenerateFromIngredients(ctx context.Context, ingredients []string) (*GeneratedRecipe, error)
}
