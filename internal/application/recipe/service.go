// Package recipe provides the application layer for recipe discovery and
// management, implementing the use cases defined in the inbound ports.
package recipe

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tastebite/platform/internal/domain/recipe"
	"github.com/tastebite/platform/internal/ports/inbound"
	"github.com/tastebite/platform/internal/ports/outbound"
	"github.com/tastebite/platform/pkg/errors"
)

// Service implements the recipe use cases.
type Service struct {
	recipeRepo outbound.RecipeRepository
	userRepo   outbound.UserRepository
	catalog    outbound.CatalogClient
	ai         outbound.AIService
	logger     *zap.Logger
}

// NewService creates a new recipe service.
func NewService(
	recipeRepo outbound.RecipeRepository,
	userRepo outbound.UserRepository,
	catalog outbound.CatalogClient,
	ai outbound.AIService,
	logger *zap.Logger,
) inbound.RecipeService {
	return &Service{
		recipeRepo: recipeRepo,
		userRepo:   userRepo,
		catalog:    catalog,
		ai:         ai,
		logger:     logger.Named("recipe-service"),
	}
}

// Browse merges local and external recipes into one filtered, sorted,
// paginated page. The two sources are fetched in parallel and a failed or
// slow source degrades to an empty list rather than failing the whole
// request; the aggregation itself is a pure function over the two lists.
func (s *Service) Browse(ctx context.Context, query inbound.BrowseQuery) (*recipe.Page, error) {
	var (
		wg       sync.WaitGroup
		local    []recipe.Summary
		external []recipe.Summary
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		recipes, err := s.recipeRepo.FindAll(ctx)
		if err != nil {
			s.logger.Warn("Local recipes unavailable for browse", zap.Error(err))
			return
		}
		local = make([]recipe.Summary, 0, len(recipes))
		for _, r := range recipes {
			local = append(local, r.Summary())
		}
	}()
	go func() {
		defer wg.Done()
		summaries, err := s.fetchCatalog(ctx, query)
		if err != nil {
			s.logger.Warn("External catalog unavailable for browse", zap.Error(err))
			return
		}
		external = summaries
	}()
	wg.Wait()

	page := recipe.Aggregate(local, external, recipe.Filters{
		SearchTerm: query.SearchTerm,
		Category:   query.Category,
		Area:       query.Area,
		MinRating:  query.MinRating,
		Sort:       recipe.SortOrder(query.Sort),
		Page:       query.Page,
		PageSize:   query.PageSize,
	})

	return &page, nil
}

// fetchCatalog picks the narrowest catalog endpoint the query allows.
// Category and area scoped listings come pre-filtered from the catalog,
// but they still pass through the aggregation filters so local recipes
// are held to the same predicates.
func (s *Service) fetchCatalog(ctx context.Context, query inbound.BrowseQuery) ([]recipe.Summary, error) {
	switch {
	case query.Category != "":
		return s.catalog.FilterByCategory(ctx, query.Category)
	case query.Area != "":
		return s.catalog.FilterByArea(ctx, query.Area)
	default:
		return s.catalog.Search(ctx, query.SearchTerm)
	}
}

// CreateRecipe creates a new user-authored recipe.
func (s *Service) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Creating recipe",
		zap.String("title", cmd.Title),
		zap.String("author_id", cmd.AuthorID.String()),
	)

	entity, err := recipe.NewRecipe(cmd.Title, cmd.Category, cmd.Area, cmd.AuthorID, s.resolveAuthorName(ctx, cmd.AuthorID, cmd.AuthorName))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.ImageURL != "" {
		if err := entity.UpdateDetails(cmd.Title, cmd.Category, cmd.Area, cmd.ImageURL); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := entity.SetIngredients(toIngredients(cmd.Ingredients)); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := entity.SetInstructions(cmd.Instructions); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}

	s.logger.Info("Recipe created", zap.String("recipe_id", entity.ID().String()))
	return entityToDTO(entity), nil
}

// UpdateRecipe updates an existing recipe owned by the caller.
func (s *Service) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	entity, err := s.findRecipe(ctx, cmd.RecipeID)
	if err != nil {
		return nil, err
	}
	if entity.AuthorID() != cmd.UserID {
		return nil, errors.NewNotOwnerError("update this recipe")
	}

	title := entity.Title()
	category := entity.Category()
	area := entity.Area()
	imageURL := entity.ImageURL()
	if cmd.Title != nil {
		title = *cmd.Title
	}
	if cmd.Category != nil {
		category = *cmd.Category
	}
	if cmd.Area != nil {
		area = *cmd.Area
	}
	if cmd.ImageURL != nil {
		imageURL = *cmd.ImageURL
	}
	if err := entity.UpdateDetails(title, category, area, imageURL); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if cmd.Ingredients != nil {
		if err := entity.SetIngredients(toIngredients(*cmd.Ingredients)); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Instructions != nil {
		if err := entity.SetInstructions(*cmd.Instructions); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("update recipe", err)
	}

	s.logger.Info("Recipe updated", zap.String("recipe_id", entity.ID().String()))
	return entityToDTO(entity), nil
}

// DeleteRecipe deletes a recipe. Admins may delete any recipe; other
// callers only their own.
func (s *Service) DeleteRecipe(ctx context.Context, recipeID, actorID uuid.UUID, asAdmin bool) error {
	entity, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if !asAdmin && entity.AuthorID() != actorID {
		return errors.NewNotOwnerError("delete this recipe")
	}

	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return errors.NewDatabaseError("delete recipe", err)
	}

	s.logger.Info("Recipe deleted",
		zap.String("recipe_id", recipeID.String()),
		zap.String("actor_id", actorID.String()),
		zap.Bool("as_admin", asAdmin),
	)
	return nil
}

// ImportExternalRecipe copies a catalog recipe into the local store so it
// can accumulate ratings, comments and favorites. At most one local copy
// exists per external id; a second import returns a conflict.
func (s *Service) ImportExternalRecipe(ctx context.Context, externalID string, userID uuid.UUID) (*inbound.RecipeDTO, error) {
	if existing, err := s.recipeRepo.FindByExternalID(ctx, externalID); err == nil && existing != nil {
		return nil, errors.NewAlreadyImportedError(externalID)
	}

	catalogRecipe, err := s.catalog.Lookup(ctx, externalID)
	if err != nil {
		return nil, errors.NewCatalogError(err)
	}
	if catalogRecipe == nil {
		return nil, errors.NewRecipeNotFoundError(externalID)
	}

	entity, err := recipe.NewImportedRecipe(
		catalogRecipe.ID,
		catalogRecipe.Title,
		catalogRecipe.Category,
		catalogRecipe.Area,
		catalogRecipe.ImageURL,
		userID,
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := entity.SetIngredients(catalogRecipe.Ingredients); err != nil {
		// Catalog measures are free text and may not fit the measure
		// grammar; keep them as names only rather than rejecting the
		// import.
		names := make([]recipe.Ingredient, len(catalogRecipe.Ingredients))
		for i, ing := range catalogRecipe.Ingredients {
			names[i] = recipe.Ingredient{Name: strings.TrimSpace(ing.Name + " " + ing.Measure)}
		}
		if err := entity.SetIngredients(names); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if len(catalogRecipe.Instructions) > 0 {
		if err := entity.SetInstructions(catalogRecipe.Instructions); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("import recipe", err)
	}

	s.logger.Info("Catalog recipe imported",
		zap.String("external_id", externalID),
		zap.String("recipe_id", entity.ID().String()),
	)
	return entityToDTO(entity), nil
}

// GenerateRecipe asks the AI service for a recipe built from the given
// ingredients and optionally saves it as the caller's recipe.
func (s *Service) GenerateRecipe(ctx context.Context, cmd inbound.GenerateRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Generating recipe",
		zap.String("user_id", cmd.UserID.String()),
		zap.Int("ingredients", len(cmd.Ingredients)),
	)

	generated, err := s.ai.GenerateFromIngredients(ctx, cmd.Ingredients)
	if err != nil {
		if stderrors.Is(err, outbound.ErrAIGenerationDisabled) {
			return nil, errors.NewForbiddenError("Recipe generation is disabled")
		}
		return nil, errors.NewAIError(err)
	}

	entity, err := recipe.NewRecipe(generated.Title, generated.Category, generated.Area, cmd.UserID, s.resolveAuthorName(ctx, cmd.UserID, cmd.AuthorName))
	if err != nil {
		return nil, errors.NewAIError(err)
	}
	if err := entity.SetIngredients(generated.Ingredients); err != nil {
		return nil, errors.NewAIError(err)
	}
	if err := entity.SetInstructions(generated.Instructions); err != nil {
		return nil, errors.NewAIError(err)
	}

	if cmd.Save {
		if err := s.recipeRepo.Create(ctx, entity); err != nil {
			return nil, errors.NewDatabaseError("save generated recipe", err)
		}
		s.logger.Info("Generated recipe saved", zap.String("recipe_id", entity.ID().String()))
	}

	return entityToDTO(entity), nil
}

// RateRecipe records the user's rating and returns the updated recipe.
func (s *Service) RateRecipe(ctx context.Context, recipeID, userID uuid.UUID, value int) (*inbound.RecipeDTO, error) {
	entity, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if err := entity.Rate(userID, value); err != nil {
		switch err {
		case recipe.ErrCannotRateOwnRecipe:
			return nil, errors.NewForbiddenError(err.Error())
		default:
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("update recipe rating", err)
	}
	return entityToDTO(entity), nil
}

// CommentRecipe appends a comment and returns it.
func (s *Service) CommentRecipe(ctx context.Context, recipeID, userID uuid.UUID, authorName, body string) (*inbound.CommentDTO, error) {
	entity, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	comment, err := entity.AddComment(userID, s.resolveAuthorName(ctx, userID, authorName), body)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("save comment", err)
	}

	dto := commentToDTO(comment)
	return &dto, nil
}

// FavoriteRecipe marks a recipe as one of the user's favorites and bumps
// its favorites counter. Favoriting twice is a no-op, so the counter
// tracks distinct users.
func (s *Service) FavoriteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	entity, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return err
	}

	already, err := s.recipeRepo.IsFavorite(ctx, recipeID, userID)
	if err != nil {
		return errors.NewDatabaseError("check favorite", err)
	}
	if already {
		return nil
	}

	if err := s.recipeRepo.AddFavorite(ctx, recipeID, userID); err != nil {
		return errors.NewDatabaseError("add favorite", err)
	}

	entity.Favorite()
	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return errors.NewDatabaseError("update favorites count", err)
	}
	return nil
}

// UnfavoriteRecipe removes a recipe from the user's favorites and drops
// the counter back down.
func (s *Service) UnfavoriteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	entity, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return err
	}

	already, err := s.recipeRepo.IsFavorite(ctx, recipeID, userID)
	if err != nil {
		return errors.NewDatabaseError("check favorite", err)
	}
	if !already {
		return nil
	}

	if err := s.recipeRepo.RemoveFavorite(ctx, recipeID, userID); err != nil {
		return errors.NewDatabaseError("remove favorite", err)
	}

	entity.Unfavorite()
	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return errors.NewDatabaseError("update favorites count", err)
	}
	return nil
}

// GetRecipe retrieves a local recipe by id.
func (s *Service) GetRecipe(ctx context.Context, recipeID uuid.UUID) (*inbound.RecipeDTO, error) {
	entity, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return entityToDTO(entity), nil
}

// GetCatalogRecipe proxies a catalog lookup so browsers never talk to the
// catalog directly.
func (s *Service) GetCatalogRecipe(ctx context.Context, externalID string) (*outbound.CatalogRecipe, error) {
	catalogRecipe, err := s.catalog.Lookup(ctx, externalID)
	if err != nil {
		return nil, errors.NewCatalogError(err)
	}
	if catalogRecipe == nil {
		return nil, errors.NewRecipeNotFoundError(externalID)
	}
	return catalogRecipe, nil
}

// ListUserRecipes returns summaries of the user's own recipes.
func (s *Service) ListUserRecipes(ctx context.Context, userID uuid.UUID) ([]recipe.Summary, error) {
	recipes, err := s.recipeRepo.FindByAuthor(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list user recipes", err)
	}
	return toSummaries(recipes), nil
}

// ListFavorites returns summaries of the user's favorite recipes.
func (s *Service) ListFavorites(ctx context.Context, userID uuid.UUID) ([]recipe.Summary, error) {
	recipes, err := s.recipeRepo.FindFavorites(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list favorites", err)
	}
	return toSummaries(recipes), nil
}

// ListComments returns a recipe's comments, oldest first.
func (s *Service) ListComments(ctx context.Context, recipeID uuid.UUID) ([]inbound.CommentDTO, error) {
	entity, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	comments := entity.Comments()
	dtos := make([]inbound.CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = commentToDTO(c)
	}
	return dtos, nil
}

// Categories lists the catalog's categories.
func (s *Service) Categories(ctx context.Context) ([]outbound.CatalogCategory, error) {
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return nil, errors.NewCatalogError(err)
	}
	return categories, nil
}

// Areas lists the catalog's cuisine areas.
func (s *Service) Areas(ctx context.Context) ([]string, error) {
	areas, err := s.catalog.Areas(ctx)
	if err != nil {
		return nil, errors.NewCatalogError(err)
	}
	return areas, nil
}

// Helpers

func (s *Service) findRecipe(ctx context.Context, recipeID uuid.UUID) (*recipe.Recipe, error) {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if err == recipe.ErrRecipeNotFound {
			return nil, errors.NewRecipeNotFoundError(recipeID.String())
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	if entity == nil {
		return nil, errors.NewRecipeNotFoundError(recipeID.String())
	}
	return entity, nil
}

// resolveAuthorName falls back to the stored account name when the
// caller did not supply a display name.
func (s *Service) resolveAuthorName(ctx context.Context, userID uuid.UUID, provided string) string {
	if provided != "" {
		return provided
	}
	account, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || account == nil {
		return ""
	}
	return account.Name()
}

func toIngredients(inputs []inbound.IngredientInput) []recipe.Ingredient {
	out := make([]recipe.Ingredient, len(inputs))
	for i, in := range inputs {
		out[i] = recipe.Ingredient{Name: in.Name, Measure: in.Measure}
	}
	return out
}

func toSummaries(recipes []*recipe.Recipe) []recipe.Summary {
	out := make([]recipe.Summary, len(recipes))
	for i, r := range recipes {
		out[i] = r.Summary()
	}
	return out
}

func entityToDTO(entity *recipe.Recipe) *inbound.RecipeDTO {
	ingredients := make([]inbound.IngredientDTO, len(entity.Ingredients()))
	for i, ing := range entity.Ingredients() {
		ingredients[i] = inbound.IngredientDTO{Name: ing.Name, Measure: ing.Measure}
	}

	return &inbound.RecipeDTO{
		ID:            entity.ID(),
		Title:         entity.Title(),
		Category:      entity.Category(),
		Area:          entity.Area(),
		ImageURL:      entity.ImageURL(),
		Ingredients:   ingredients,
		Instructions:  entity.Instructions(),
		AuthorID:      entity.AuthorID(),
		AuthorName:    entity.AuthorName(),
		ExternalID:    entity.ExternalID(),
		AverageRating: entity.AverageRating(),
		RatingsCount:  entity.RatingsCount(),
		Favorites:     entity.Favorites(),
		CreatedAt:     entity.CreatedAt().Format(time.RFC3339),
		UpdatedAt:     entity.UpdatedAt().Format(time.RFC3339),
	}
}

func commentToDTO(c recipe.Comment) inbound.CommentDTO {
	return inbound.CommentDTO{
		ID:        c.ID,
		UserID:    c.UserID,
		Author:    c.Author,
		Body:      c.Body,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
