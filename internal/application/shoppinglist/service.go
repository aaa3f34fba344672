// Package shoppinglist provides the application layer for the per-user
// shopping list: building it from recipes, item management and sharing.
package shoppinglist

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tastebite/platform/internal/domain/recipe"
	"github.com/tastebite/platform/internal/domain/shoppinglist"
	"github.com/tastebite/platform/internal/ports/outbound"
	"github.com/tastebite/platform/pkg/errors"
)

// Service implements shopping list use cases.
type Service struct {
	listRepo   outbound.ShoppingListRepository
	recipeRepo outbound.RecipeRepository
	catalog    outbound.CatalogClient
	logger     *zap.Logger
}

// NewService creates a new shopping list service.
func NewService(
	listRepo outbound.ShoppingListRepository,
	recipeRepo outbound.RecipeRepository,
	catalog outbound.CatalogClient,
	logger *zap.Logger,
) *Service {
	return &Service{
		listRepo:   listRepo,
		recipeRepo: recipeRepo,
		catalog:    catalog,
		logger:     logger.Named("shopping-list-service"),
	}
}

// ItemDTO is the API shape of a shopping list item.
type ItemDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit,omitempty"`
	Measure  string    `json:"measure,omitempty"`
	Checked  bool      `json:"checked"`
}

// ListDTO is the API shape of a shopping list.
type ListDTO struct {
	ID         uuid.UUID `json:"id"`
	Items      []ItemDTO `json:"items"`
	ShareToken string    `json:"share_token,omitempty"`
}

// Get returns the caller's list, creating an empty one on first access.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*ListDTO, error) {
	list, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTO(list, true), nil
}

// AddRecipe merges the ingredients of a stored recipe into the list.
func (s *Service) AddRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*ListDTO, error) {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if err == recipe.ErrRecipeNotFound {
			return nil, errors.NewRecipeNotFoundError(recipeID.String())
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	return s.addIngredients(ctx, userID, entity.Ingredients())
}

// AddCatalogRecipe merges the ingredients of an external catalog recipe
// into the list without importing it.
func (s *Service) AddCatalogRecipe(ctx context.Context, userID uuid.UUID, externalID string) (*ListDTO, error) {
	cr, err := s.catalog.Lookup(ctx, externalID)
	if err != nil {
		return nil, errors.NewCatalogError(err)
	}
	if cr == nil {
		return nil, errors.NewNotFoundError("Recipe")
	}
	return s.addIngredients(ctx, userID, cr.Ingredients)
}

// AddItem appends a manual free-form item.
func (s *Service) AddItem(ctx context.Context, userID uuid.UUID, name, measure string) (*ListDTO, error) {
	list, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := list.AddItem(name, measure); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return s.save(ctx, list)
}

// ToggleItem flips the checked state of an item.
func (s *Service) ToggleItem(ctx context.Context, userID, itemID uuid.UUID) (*ListDTO, error) {
	list, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := list.ToggleItem(itemID); err != nil {
		return nil, errors.NewNotFoundError("Item")
	}
	return s.save(ctx, list)
}

// RemoveItem deletes a single item.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*ListDTO, error) {
	list, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := list.RemoveItem(itemID); err != nil {
		return nil, errors.NewNotFoundError("Item")
	}
	return s.save(ctx, list)
}

// Clear removes every item.
func (s *Service) Clear(ctx context.Context, userID uuid.UUID) (*ListDTO, error) {
	list, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	list.Clear()
	return s.save(ctx, list)
}

// Share enables the public share link and returns the list with its token.
func (s *Service) Share(ctx context.Context, userID uuid.UUID) (*ListDTO, error) {
	list, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := list.Share(); err != nil {
		return nil, errors.NewInternalError("failed to generate share token").WithCause(err)
	}
	s.logger.Info("Shopping list shared", zap.String("user_id", userID.String()))
	return s.save(ctx, list)
}

// Unshare revokes the public share link.
func (s *Service) Unshare(ctx context.Context, userID uuid.UUID) (*ListDTO, error) {
	list, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	list.Unshare()
	return s.save(ctx, list)
}

// GetShared resolves a share token to a read-only view of the list. The
// share token is never echoed back on this path.
func (s *Service) GetShared(ctx context.Context, token string) (*ListDTO, error) {
	list, err := s.listRepo.FindByShareToken(ctx, token)
	if err != nil && err != shoppinglist.ErrListNotFound {
		return nil, errors.NewDatabaseError("find shared list", err)
	}
	if list == nil {
		return nil, errors.NewNotFoundError("Shopping list")
	}
	return toDTO(list, false), nil
}

func (s *Service) addIngredients(ctx context.Context, userID uuid.UUID, ingredients []recipe.Ingredient) (*ListDTO, error) {
	list, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	list.AddIngredients(ingredients)
	return s.save(ctx, list)
}

func (s *Service) loadOrCreate(ctx context.Context, userID uuid.UUID) (*shoppinglist.List, error) {
	list, err := s.listRepo.FindByUserID(ctx, userID)
	if err != nil && err != shoppinglist.ErrListNotFound {
		return nil, errors.NewDatabaseError("find shopping list", err)
	}
	if list == nil {
		list = shoppinglist.New(userID)
	}
	return list, nil
}

func (s *Service) save(ctx context.Context, list *shoppinglist.List) (*ListDTO, error) {
	if err := s.listRepo.Save(ctx, list); err != nil {
		return nil, errors.NewDatabaseError("save shopping list", err)
	}
	return toDTO(list, true), nil
}

func toDTO(list *shoppinglist.List, includeToken bool) *ListDTO {
	items := list.Items()
	dto := &ListDTO{
		ID:    list.ID(),
		Items: make([]ItemDTO, len(items)),
	}
	for i, it := range items {
		dto.Items[i] = ItemDTO{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Unit:     it.Unit,
			Measure:  it.Measure,
			Checked:  it.Checked,
		}
	}
	if includeToken {
		dto.ShareToken = list.ShareToken()
	}
	return dto
}
