// Package inbound defines the interfaces for inbound ports (primary or
// driving adapters). HTTP handlers depend on these, not on the concrete
// application services.
package inbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/tastebite/platform/internal/domain/recipe"
	"github.com/tastebite/platform/internal/ports/outbound"
)

// RecipeService defines the use cases for recipe discovery and management.
type RecipeService interface {
	// Browse merges local and external recipes into one filtered,
	// sorted, paginated page.
	Browse(ctx context.Context, query BrowseQuery) (*recipe.Page, error)

	// Local recipe commands
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, recipeID, actorID uuid.UUID, asAdmin bool) error
	ImportExternalRecipe(ctx context.Context, externalID string, userID uuid.UUID) (*RecipeDTO, error)
	GenerateRecipe(ctx context.Context, cmd GenerateRecipeCommand) (*RecipeDTO, error)

	// Interactions
	RateRecipe(ctx context.Context, recipeID, userID uuid.UUID, value int) (*RecipeDTO, error)
	CommentRecipe(ctx context.Context, recipeID, userID uuid.UUID, authorName, body string) (*CommentDTO, error)
	FavoriteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error
	UnfavoriteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error

	// Queries
	GetRecipe(ctx context.Context, recipeID uuid.UUID) (*RecipeDTO, error)
	GetCatalogRecipe(ctx context.Context, externalID string) (*outbound.CatalogRecipe, error)
	ListUserRecipes(ctx context.Context, userID uuid.UUID) ([]recipe.Summary, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]recipe.Summary, error)
	ListComments(ctx context.Context, recipeID uuid.UUID) ([]CommentDTO, error)
	Categories(ctx context.Context) ([]outbound.CatalogCategory, error)
	Areas(ctx context.Context) ([]string, error)
}

// BrowseQuery holds the user-chosen browse parameters. Handlers bind and
// validate it before handing it to the service.
type BrowseQuery struct {
	SearchTerm string  `json:"search"`
	Category   string  `json:"category"`
	Area       string  `json:"area"`
	MinRating  float64 `json:"min_rating" validate:"gte=0,lte=5"`
	Sort       string  `json:"sort" validate:"omitempty,oneof=name-asc name-desc rating-desc rating-asc"`
	Page       int     `json:"page" validate:"omitempty,gte=1"`
	PageSize   int     `json:"page_size" validate:"omitempty,gte=1,lte=100"`
}

// CreateRecipeCommand contains data for creating a new recipe.
type CreateRecipeCommand struct {
	AuthorID     uuid.UUID
	AuthorName   string
	Title        string              `validate:"required,min=3,max=200"`
	Category     string              `validate:"max=100"`
	Area         string              `validate:"max=100"`
	ImageURL     string              `validate:"omitempty,url"`
	Ingredients  []IngredientInput   `validate:"required,min=1,dive"`
	Instructions []string            `validate:"required,min=1"`
}

// UpdateRecipeCommand contains data for updating a recipe. Nil fields are
// left unchanged.
type UpdateRecipeCommand struct {
	RecipeID     uuid.UUID
	UserID       uuid.UUID
	Title        *string
	Category     *string
	Area         *string
	ImageURL     *string
	Ingredients  *[]IngredientInput
	Instructions *[]string
}

// IngredientInput is one ingredient row from a create or edit form.
type IngredientInput struct {
	Name    string `json:"name" validate:"required"`
	Measure string `json:"measure"`
}

// GenerateRecipeCommand requests an AI-generated recipe from a list of
// ingredients on hand.
type GenerateRecipeCommand struct {
	UserID      uuid.UUID
	AuthorName  string
	Ingredients []string `validate:"required,min=1,dive,required"`
	Save        bool
}

// RecipeDTO is the data transfer object for a full recipe.
type RecipeDTO struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Category      string          `json:"category,omitempty"`
	Area          string          `json:"area,omitempty"`
	ImageURL      string          `json:"image_url,omitempty"`
	Ingredients   []IngredientDTO `json:"ingredients"`
	Instructions  []string        `json:"instructions"`
	AuthorID      uuid.UUID       `json:"author_id"`
	AuthorName    string          `json:"author_name,omitempty"`
	ExternalID    string          `json:"external_id,omitempty"`
	AverageRating float64         `json:"average_rating"`
	RatingsCount  int             `json:"ratings_count"`
	Favorites     int             `json:"favorites"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

// IngredientDTO for ingredient data.
type IngredientDTO struct {
	Name    string `json:"name"`
	Measure string `json:"measure,omitempty"`
}

// CommentDTO for comment data.
type CommentDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt string    `json:"created_at"`
}
