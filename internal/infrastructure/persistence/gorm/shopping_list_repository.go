package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastebite/platform/internal/domain/shoppinglist"
	"github.com/tastebite/platform/internal/ports/outbound"
)

// ShoppingListRepository implements outbound.ShoppingListRepository on GORM.
type ShoppingListRepository struct {
	db *gorm.DB
}

// NewShoppingListRepository creates a new shopping list repository.
func NewShoppingListRepository(db *gorm.DB) outbound.ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

// Save upserts the list row and replaces its items.
func (r *ShoppingListRepository) Save(ctx context.Context, list *shoppinglist.List) error {
	model := listToModel(list)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing ShoppingListModel
		err := tx.First(&existing, "id = ?", model.ID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := ShoppingListModel{
				ID:         model.ID,
				UserID:     model.UserID,
				ShareToken: model.ShareToken,
				UpdatedAt:  model.UpdatedAt,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&ShoppingListModel{}).Where("id = ?", model.ID).Updates(map[string]interface{}{
				"share_token": model.ShareToken,
				"updated_at":  model.UpdatedAt,
			}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("list_id = ?", model.ID).Delete(&ShoppingListItemModel{}).Error; err != nil {
			return err
		}
		for i := range model.Items {
			if err := tx.Create(&model.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ShoppingListRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*shoppinglist.List, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *ShoppingListRepository) FindByShareToken(ctx context.Context, token string) (*shoppinglist.List, error) {
	if token == "" {
		return nil, shoppinglist.ErrListNotFound
	}
	return r.findOne(ctx, "share_token = ?", token)
}

func (r *ShoppingListRepository) findOne(ctx context.Context, query string, arg interface{}) (*shoppinglist.List, error) {
	var model ShoppingListModel
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("added_at ASC")
		}).
		First(&model, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shoppinglist.ErrListNotFound
		}
		return nil, err
	}
	return listToDomain(&model), nil
}
