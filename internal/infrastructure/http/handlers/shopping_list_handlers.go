package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	listapp "github.com/tastebite/platform/internal/application/shoppinglist"
	"github.com/tastebite/platform/internal/infrastructure/http/middleware"
	"github.com/tastebite/platform/pkg/errors"
)

// ShoppingListHandlers serves the shopping list endpoints.
type ShoppingListHandlers struct {
	lists  *listapp.Service
	logger *zap.Logger
}

// NewShoppingListHandlers creates shopping list API handlers.
func NewShoppingListHandlers(lists *listapp.Service, logger *zap.Logger) *ShoppingListHandlers {
	return &ShoppingListHandlers{
		lists:  lists,
		logger: logger.Named("shopping-list-handlers"),
	}
}

// Get handles GET /shopping-list.
func (h *ShoppingListHandlers) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}
	h.respond(w, r)(h.lists.Get(r.Context(), userID))
}

type addRecipeRequest struct {
	RecipeID   *uuid.UUID `json:"recipe_id"`
	ExternalID string     `json:"external_id"`
}

// AddRecipe handles POST /shopping-list/recipes: merge the ingredients of
// a stored or catalog recipe into the list.
func (h *ShoppingListHandlers) AddRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req addRecipeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	switch {
	case req.RecipeID != nil:
		h.respond(w, r)(h.lists.AddRecipe(r.Context(), userID, *req.RecipeID))
	case req.ExternalID != "":
		h.respond(w, r)(h.lists.AddCatalogRecipe(r.Context(), userID, req.ExternalID))
	default:
		writeError(w, r, h.logger, errors.NewBadRequestError("recipe_id or external_id is required"))
	}
}

type addItemRequest struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// AddItem handles POST /shopping-list/items.
func (h *ShoppingListHandlers) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.respond(w, r)(h.lists.AddItem(r.Context(), userID, req.Name, req.Measure))
}

// ToggleItem handles POST /shopping-list/items/{itemID}/toggle.
func (h *ShoppingListHandlers) ToggleItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.respond(w, r)(h.lists.ToggleItem(r.Context(), userID, itemID))
}

// RemoveItem handles DELETE /shopping-list/items/{itemID}.
func (h *ShoppingListHandlers) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.respond(w, r)(h.lists.RemoveItem(r.Context(), userID, itemID))
}

// Clear handles DELETE /shopping-list.
func (h *ShoppingListHandlers) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}
	h.respond(w, r)(h.lists.Clear(r.Context(), userID))
}

// Share handles POST /shopping-list/share.
func (h *ShoppingListHandlers) Share(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}
	h.respond(w, r)(h.lists.Share(r.Context(), userID))
}

// Unshare handles DELETE /shopping-list/share.
func (h *ShoppingListHandlers) Unshare(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}
	h.respond(w, r)(h.lists.Unshare(r.Context(), userID))
}

// GetShared handles GET /shopping-lists/shared/{token}, the public
// read-only view.
func (h *ShoppingListHandlers) GetShared(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		writeError(w, r, h.logger, errors.NewBadRequestError("share token is required"))
		return
	}
	h.respond(w, r)(h.lists.GetShared(r.Context(), token))
}

func (h *ShoppingListHandlers) caller(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError(""))
		return uuid.Nil, false
	}
	return userID, true
}

func (h *ShoppingListHandlers) respond(w http.ResponseWriter, r *http.Request) func(*listapp.ListDTO, error) {
	return func(dto *listapp.ListDTO, err error) {
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, dto)
	}
}
