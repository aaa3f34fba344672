package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tastebite/platform/internal/infrastructure/http/middleware"
	"github.com/tastebite/platform/internal/ports/inbound"
	"github.com/tastebite/platform/pkg/errors"
)

// RecipeHandlers serves the recipe discovery and management endpoints.
type RecipeHandlers struct {
	service  inbound.RecipeService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewRecipeHandlers creates recipe API handlers.
func NewRecipeHandlers(service inbound.RecipeService, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{
		service:  service,
		validate: validator.New(),
		logger:   logger.Named("recipe-handlers"),
	}
}

// Browse handles GET /recipes. Query parameters drive search, filters,
// sorting and pagination.
func (h *RecipeHandlers) Browse(w http.ResponseWriter, r *http.Request) {
	query, err := bindBrowseQuery(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.validate.Struct(query); err != nil {
		writeError(w, r, h.logger, errors.NewValidationError(err.Error()))
		return
	}

	page, err := h.service.Browse(r.Context(), query)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func bindBrowseQuery(r *http.Request) (inbound.BrowseQuery, error) {
	q := r.URL.Query()
	query := inbound.BrowseQuery{
		SearchTerm: q.Get("search"),
		Category:   q.Get("category"),
		Area:       q.Get("area"),
		Sort:       q.Get("sort"),
	}

	var err error
	if query.MinRating, err = floatParam(q.Get("min_rating")); err != nil {
		return query, errors.NewBadRequestError("min_rating must be a number")
	}
	if query.Page, err = intParam(q.Get("page")); err != nil {
		return query, errors.NewBadRequestError("page must be an integer")
	}
	if query.PageSize, err = intParam(q.Get("page_size")); err != nil {
		return query, errors.NewBadRequestError("page_size must be an integer")
	}
	return query, nil
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func floatParam(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

// Get handles GET /recipes/{id}.
func (h *RecipeHandlers) Get(w http.ResponseWriter, r *http.Request) {
	recipeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	dto, err := h.service.GetRecipe(r.Context(), recipeID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

type createRecipeRequest struct {
	Title        string                    `json:"title"`
	Category     string                    `json:"category"`
	Area         string                    `json:"area"`
	ImageURL     string                    `json:"image_url"`
	Ingredients  []inbound.IngredientInput `json:"ingredients"`
	Instructions []string                  `json:"instructions"`
}

// Create handles POST /recipes.
func (h *RecipeHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, userName, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req createRecipeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	cmd := inbound.CreateRecipeCommand{
		AuthorID:     userID,
		AuthorName:   userName,
		Title:        req.Title,
		Category:     req.Category,
		Area:         req.Area,
		ImageURL:     req.ImageURL,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
	}
	if err := h.validate.Struct(cmd); err != nil {
		writeError(w, r, h.logger, errors.NewValidationError(err.Error()))
		return
	}

	dto, err := h.service.CreateRecipe(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

type updateRecipeRequest struct {
	Title        *string                    `json:"title"`
	Category     *string                    `json:"category"`
	Area         *string                    `json:"area"`
	ImageURL     *string                    `json:"image_url"`
	Ingredients  *[]inbound.IngredientInput `json:"ingredients"`
	Instructions *[]string                  `json:"instructions"`
}

// Update handles PUT /recipes/{id}.
func (h *RecipeHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.caller(w, r)
	if !ok {
		return
	}
	recipeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req updateRecipeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	dto, err := h.service.UpdateRecipe(r.Context(), inbound.UpdateRecipeCommand{
		RecipeID:     recipeID,
		UserID:       userID,
		Title:        req.Title,
		Category:     req.Category,
		Area:         req.Area,
		ImageURL:     req.ImageURL,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// Delete handles DELETE /recipes/{id}. Admins may delete any recipe.
func (h *RecipeHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.caller(w, r)
	if !ok {
		return
	}
	recipeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.service.DeleteRecipe(r.Context(), recipeID, userID, middleware.IsAdmin(r.Context())); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type importRequest struct {
	ExternalID string `json:"external_id"`
}

// Import handles POST /recipes/import.
func (h *RecipeHandlers) Import(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req importRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.ExternalID == "" {
		writeError(w, r, h.logger, errors.NewBadRequestError("external_id is required"))
		return
	}

	dto, err := h.service.ImportExternalRecipe(r.Context(), req.ExternalID, userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

type generateRequest struct {
	Ingredients []string `json:"ingredients"`
	Save        bool     `json:"save"`
}

// Generate handles POST /recipes/generate.
func (h *RecipeHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	userID, userName, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req generateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	cmd := inbound.GenerateRecipeCommand{
		UserID:      userID,
		AuthorName:  userName,
		Ingredients: req.Ingredients,
		Save:        req.Save,
	}
	if err := h.validate.Struct(cmd); err != nil {
		writeError(w, r, h.logger, errors.NewValidationError(err.Error()))
		return
	}

	dto, err := h.service.GenerateRecipe(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

type rateRequest struct {
	Value int `json:"value"`
}

// Rate handles POST /recipes/{id}/rating.
func (h *RecipeHandlers) Rate(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.caller(w, r)
	if !ok {
		return
	}
	recipeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req rateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	dto, err := h.service.RateRecipe(r.Context(), recipeID, userID, req.Value)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

type commentRequest struct {
	Body string `json:"body"`
}

// Comment handles POST /recipes/{id}/comments.
func (h *RecipeHandlers) Comment(w http.ResponseWriter, r *http.Request) {
	userID, userName, ok := h.caller(w, r)
	if !ok {
		return
	}
	recipeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req commentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	dto, err := h.service.CommentRecipe(r.Context(), recipeID, userID, userName, req.Body)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

// ListComments handles GET /recipes/{id}/comments.
func (h *RecipeHandlers) ListComments(w http.ResponseWriter, r *http.Request) {
	recipeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	comments, err := h.service.ListComments(r.Context(), recipeID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"comments": comments})
}

// Favorite handles POST /recipes/{id}/favorite.
func (h *RecipeHandlers) Favorite(w http.ResponseWriter, r *http.Request) {
	h.setFavorite(w, r, true)
}

// Unfavorite handles DELETE /recipes/{id}/favorite.
func (h *RecipeHandlers) Unfavorite(w http.ResponseWriter, r *http.Request) {
	h.setFavorite(w, r, false)
}

func (h *RecipeHandlers) setFavorite(w http.ResponseWriter, r *http.Request, favorite bool) {
	userID, _, ok := h.caller(w, r)
	if !ok {
		return
	}
	recipeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if favorite {
		err = h.service.FavoriteRecipe(r.Context(), recipeID, userID)
	} else {
		err = h.service.UnfavoriteRecipe(r.Context(), recipeID, userID)
	}
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// ListMine handles GET /recipes/mine.
func (h *RecipeHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.caller(w, r)
	if !ok {
		return
	}

	summaries, err := h.service.ListUserRecipes(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"recipes": summaries})
}

// ListFavorites handles GET /recipes/favorites.
func (h *RecipeHandlers) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.caller(w, r)
	if !ok {
		return
	}

	summaries, err := h.service.ListFavorites(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"recipes": summaries})
}

// Categories handles GET /catalog/categories.
func (h *RecipeHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

// Areas handles GET /catalog/areas.
func (h *RecipeHandlers) Areas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.service.Areas(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"areas": areas})
}

// GetCatalogRecipe handles GET /catalog/recipes/{externalID}.
func (h *RecipeHandlers) GetCatalogRecipe(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "externalID")
	if externalID == "" {
		writeError(w, r, h.logger, errors.NewBadRequestError("external id is required"))
		return
	}

	detail, err := h.service.GetCatalogRecipe(r.Context(), externalID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// caller resolves the authenticated user, writing 401 when absent. The
// display name is resolved by the service from the account record.
func (h *RecipeHandlers) caller(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError(""))
		return uuid.Nil, "", false
	}
	return userID, "", true
}

func pathID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, errors.NewBadRequestError("invalid id")
	}
	return id, nil
}
