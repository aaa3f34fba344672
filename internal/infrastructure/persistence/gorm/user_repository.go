package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastebite/platform/internal/domain/user"
	"github.com/tastebite/platform/internal/ports/outbound"
)

// UserRepository implements outbound.UserRepository on GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) outbound.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, entity *user.User) error {
	model := userToModel(entity)
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *UserRepository) Update(ctx context.Context, entity *user.User) error {
	model := userToModel(entity)
	return r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", model.ID).Updates(map[string]interface{}{
		"email":         model.Email,
		"name":          model.Name,
		"password_hash": model.PasswordHash,
		"role":          model.Role,
		"is_active":     model.IsActive,
		"last_login_at": model.LastLoginAt,
	}).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&model), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&model), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	var models []UserModel
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = userToDomain(&models[i])
	}
	return users, nil
}
