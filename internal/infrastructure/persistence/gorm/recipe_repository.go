package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tastebite/platform/internal/domain/recipe"
	"github.com/tastebite/platform/internal/ports/outbound"
)

// RecipeRepository implements outbound.RecipeRepository on GORM.
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) Create(ctx context.Context, entity *recipe.Recipe) error {
	model := recipeToModel(entity)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists the full aggregate state: the recipe row plus its
// ratings and comments, replaced in one transaction.
func (r *RecipeRepository) Update(ctx context.Context, entity *recipe.Recipe) error {
	model := recipeToModel(entity)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&RecipeModel{}).Where("id = ?", model.ID).Updates(map[string]interface{}{
			"title":           model.Title,
			"category":        model.Category,
			"area":            model.Area,
			"image_url":       model.ImageURL,
			"ingredients":     model.Ingredients,
			"instructions":    model.Instructions,
			"average_rating":  model.AverageRating,
			"favorites_count": model.FavoritesCount,
			"updated_at":      model.UpdatedAt,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", model.ID).Delete(&RatingModel{}).Error; err != nil {
			return err
		}
		for _, rating := range entity.Ratings() {
			row := RatingModel{
				RecipeID:  model.ID,
				UserID:    rating.UserID,
				Value:     rating.Value,
				CreatedAt: rating.CreatedAt,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("recipe_id = ?", model.ID).Delete(&CommentModel{}).Error; err != nil {
			return err
		}
		for _, comment := range entity.Comments() {
			row := CommentModel{
				ID:         comment.ID,
				RecipeID:   model.ID,
				UserID:     comment.UserID,
				AuthorName: comment.Author,
				Body:       comment.Body,
				CreatedAt:  comment.CreatedAt,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&RatingModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&CommentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&FavoriteModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&RecipeModel{}, "id = ?", id).Error
	})
}

func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel
	err := r.db.WithContext(ctx).
		Preload("Ratings").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipeToDomain(&model), nil
}

func (r *RecipeRepository) FindAll(ctx context.Context) ([]*recipe.Recipe, error) {
	var models []RecipeModel
	err := r.db.WithContext(ctx).
		Preload("Ratings").
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(models), nil
}

func (r *RecipeRepository) FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]*recipe.Recipe, error) {
	var models []RecipeModel
	err := r.db.WithContext(ctx).
		Preload("Ratings").
		Where("author_id = ? AND external_id = ''", authorID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(models), nil
}

func (r *RecipeRepository) FindByExternalID(ctx context.Context, externalID string) (*recipe.Recipe, error) {
	var model RecipeModel
	err := r.db.WithContext(ctx).
		Preload("Ratings").
		First(&model, "external_id = ?", externalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipeToDomain(&model), nil
}

func (r *RecipeRepository) AddFavorite(ctx context.Context, recipeID, userID uuid.UUID) error {
	row := FavoriteModel{RecipeID: recipeID, UserID: userID, CreatedAt: time.Now()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

func (r *RecipeRepository) RemoveFavorite(ctx context.Context, recipeID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Delete(&FavoriteModel{}).Error
}

func (r *RecipeRepository) IsFavorite(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&FavoriteModel{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *RecipeRepository) FindFavorites(ctx context.Context, userID uuid.UUID) ([]*recipe.Recipe, error) {
	var models []RecipeModel
	err := r.db.WithContext(ctx).
		Preload("Ratings").
		Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(models), nil
}

func toDomainSlice(models []RecipeModel) []*recipe.Recipe {
	entities := make([]*recipe.Recipe, len(models))
	for i := range models {
		entities[i] = recipeToDomain(&models[i])
	}
	return entities
}
