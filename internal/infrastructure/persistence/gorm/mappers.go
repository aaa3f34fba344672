package gorm

import (
	"github.com/tastebite/platform/internal/domain/recipe"
	"github.com/tastebite/platform/internal/domain/shoppinglist"
	"github.com/tastebite/platform/internal/domain/user"
)

// Mapping between domain entities and persistence models. Domain entities
// keep their fields private, so reconstruction goes through Rehydrate.

func recipeToModel(r *recipe.Recipe) *RecipeModel {
	ingredients := make(IngredientsJSON, len(r.Ingredients()))
	for i, ing := range r.Ingredients() {
		ingredients[i] = IngredientJSON{Name: ing.Name, Measure: ing.Measure}
	}

	return &RecipeModel{
		ID:             r.ID(),
		Title:          r.Title(),
		Category:       r.Category(),
		Area:           r.Area(),
		ImageURL:       r.ImageURL(),
		Ingredients:    ingredients,
		Instructions:   StringSlice(r.Instructions()),
		AuthorID:       r.AuthorID(),
		AuthorName:     r.AuthorName(),
		ExternalID:     r.ExternalID(),
		AverageRating:  r.AverageRating(),
		FavoritesCount: r.Favorites(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
}

// recipeToDomain expects Ratings and Comments to be preloaded.
func recipeToDomain(m *RecipeModel) *recipe.Recipe {
	ingredients := make([]recipe.Ingredient, len(m.Ingredients))
	for i, ing := range m.Ingredients {
		ingredients[i] = recipe.Ingredient{Name: ing.Name, Measure: ing.Measure}
	}

	ratings := make([]recipe.Rating, len(m.Ratings))
	for i, r := range m.Ratings {
		ratings[i] = recipe.Rating{UserID: r.UserID, Value: r.Value, CreatedAt: r.CreatedAt}
	}

	comments := make([]recipe.Comment, len(m.Comments))
	for i, c := range m.Comments {
		comments[i] = recipe.Comment{
			ID:        c.ID,
			UserID:    c.UserID,
			Author:    c.AuthorName,
			Body:      c.Body,
			CreatedAt: c.CreatedAt,
		}
	}

	return recipe.Rehydrate(
		m.ID,
		m.Title, m.Category, m.Area, m.ImageURL,
		ingredients,
		[]string(m.Instructions),
		m.AuthorID,
		m.AuthorName, m.ExternalID,
		ratings,
		m.FavoritesCount,
		comments,
		m.CreatedAt, m.UpdatedAt,
	)
}

func userToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Email:        u.Email(),
		Name:         u.Name(),
		PasswordHash: u.PasswordHash(),
		Role:         string(u.Role()),
		IsActive:     u.IsActive(),
		IsSystem:     u.IsSystem(),
		CreatedAt:    u.CreatedAt(),
		LastLoginAt:  u.LastLoginAt(),
	}
}

func userToDomain(m *UserModel) *user.User {
	return user.Rehydrate(
		m.ID,
		m.Email, m.Name, m.PasswordHash,
		user.Role(m.Role),
		m.IsActive, m.IsSystem,
		m.CreatedAt,
		m.LastLoginAt,
	)
}

func listToModel(l *shoppinglist.List) *ShoppingListModel {
	items := make([]ShoppingListItemModel, len(l.Items()))
	for i, it := range l.Items() {
		items[i] = ShoppingListItemModel{
			ID:       it.ID,
			ListID:   l.ID(),
			Name:     it.Name,
			Quantity: it.Quantity,
			Unit:     it.Unit,
			Measure:  it.Measure,
			Checked:  it.Checked,
			AddedAt:  it.AddedAt,
		}
	}
	return &ShoppingListModel{
		ID:         l.ID(),
		UserID:     l.UserID(),
		ShareToken: l.ShareToken(),
		UpdatedAt:  l.UpdatedAt(),
		Items:      items,
	}
}

// listToDomain expects Items to be preloaded.
func listToDomain(m *ShoppingListModel) *shoppinglist.List {
	items := make([]shoppinglist.Item, len(m.Items))
	for i, it := range m.Items {
		items[i] = shoppinglist.Item{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Unit:     it.Unit,
			Measure:  it.Measure,
			Checked:  it.Checked,
			AddedAt:  it.AddedAt,
		}
	}
	return shoppinglist.Rehydrate(m.ID, m.UserID, items, m.ShareToken, m.UpdatedAt)
}
