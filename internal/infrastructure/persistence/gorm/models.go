// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(50);default:'user'"`
	IsActive     bool      `gorm:"default:true"`
	IsSystem     bool      `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time

	// Relationships
	Recipes []RecipeModel `gorm:"foreignKey:AuthorID"`
}

// RecipeModel represents the GORM model for recipes. Imported catalog
// recipes carry an ExternalID; user-authored ones leave it empty.
type RecipeModel struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey"`
	Title    string    `gorm:"type:varchar(255);not null;index"`
	Category string    `gorm:"type:varchar(100);index"`
	Area     string    `gorm:"type:varchar(100);index"`
	ImageURL string    `gorm:"type:text"`

	Ingredients  IngredientsJSON `gorm:"type:json"`
	Instructions StringSlice     `gorm:"type:json"`

	AuthorID   uuid.UUID `gorm:"type:char(36);not null;index"`
	AuthorName string    `gorm:"type:varchar(255)"`
	ExternalID string    `gorm:"type:varchar(64);index"`

	AverageRating  float64 `gorm:"column:average_rating;default:0;index"`
	FavoritesCount int     `gorm:"column:favorites_count;default:0"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Author   UserModel      `gorm:"foreignKey:AuthorID"`
	Ratings  []RatingModel  `gorm:"foreignKey:RecipeID"`
	Comments []CommentModel `gorm:"foreignKey:RecipeID"`
}

// RatingModel represents the GORM model for recipe ratings. A user has
// at most one rating per recipe.
type RatingModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID  uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_rating_recipe_user"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_rating_recipe_user"`
	Value     int       `gorm:"not null;check:value >= 1 AND value <= 5"`
	CreatedAt time.Time

	// Relationships
	Recipe RecipeModel `gorm:"foreignKey:RecipeID"`
	User   UserModel   `gorm:"foreignKey:UserID"`
}

// CommentModel represents the GORM model for recipe comments
type CommentModel struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID   uuid.UUID `gorm:"type:char(36);not null;index"`
	UserID     uuid.UUID `gorm:"type:char(36);not null;index"`
	AuthorName string    `gorm:"type:varchar(255)"`
	Body       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"index"`

	// Relationships
	Recipe RecipeModel `gorm:"foreignKey:RecipeID"`
	User   UserModel   `gorm:"foreignKey:UserID"`
}

// FavoriteModel represents the GORM model for per-user recipe favorites
type FavoriteModel struct {
	RecipeID  uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	// Relationships
	Recipe RecipeModel `gorm:"foreignKey:RecipeID"`
	User   UserModel   `gorm:"foreignKey:UserID"`
}

// ShoppingListModel represents the GORM model for shopping lists. Each
// user owns exactly one list.
type ShoppingListModel struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID `gorm:"type:char(36);not null;uniqueIndex"`
	ShareToken string    `gorm:"type:varchar(64);index"`
	UpdatedAt  time.Time

	// Relationships
	User  UserModel               `gorm:"foreignKey:UserID"`
	Items []ShoppingListItemModel `gorm:"foreignKey:ListID"`
}

// ShoppingListItemModel represents one item on a shopping list
type ShoppingListItemModel struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey"`
	ListID   uuid.UUID `gorm:"type:char(36);not null;index"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Quantity float64   `gorm:"default:0"`
	Unit     string    `gorm:"type:varchar(32)"`
	Measure  string    `gorm:"type:varchar(64)"`
	Checked  bool      `gorm:"default:false"`
	AddedAt  time.Time
}

// IngredientJSON is the persisted shape of one ingredient.
type IngredientJSON struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// IngredientsJSON custom type for storing ingredient lists as JSON
type IngredientsJSON []IngredientJSON

// Scan implements the sql.Scanner interface
func (i *IngredientsJSON) Scan(value interface{}) error {
	if value == nil {
		*i = IngredientsJSON{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, i)
	case string:
		return json.Unmarshal([]byte(v), i)
	default:
		return fmt.Errorf("cannot scan %T into IngredientsJSON", value)
	}
}

// Value implements the driver.Valuer interface
func (i IngredientsJSON) Value() (driver.Value, error) {
	if len(i) == 0 {
		return "[]", nil
	}
	return json.Marshal(i)
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// BeforeCreate hook for UserModel
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RatingModel
func (r *RatingModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for CommentModel
func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for ShoppingListModel
func (l *ShoppingListModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for ShoppingListItemModel
func (i *ShoppingListItemModel) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (UserModel) TableName() string {
	return "users"
}

func (RecipeModel) TableName() string {
	return "recipes"
}

func (RatingModel) TableName() string {
	return "ratings"
}

func (CommentModel) TableName() string {
	return "comments"
}

func (FavoriteModel) TableName() string {
	return "favorites"
}

func (ShoppingListModel) TableName() string {
	return "shopping_lists"
}

func (ShoppingListItemModel) TableName() string {
	return "shopping_list_items"
}
