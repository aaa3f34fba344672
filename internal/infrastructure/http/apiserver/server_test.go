package apiserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	listapp "github.com/tastebite/platform/internal/application/shoppinglist"
	userapp "github.com/tastebite/platform/internal/application/user"
	"github.com/tastebite/platform/internal/domain/recipe"
	"github.com/tastebite/platform/internal/domain/shoppinglist"
	"github.com/tastebite/platform/internal/domain/user"
	"github.com/tastebite/platform/internal/infrastructure/config"
	"github.com/tastebite/platform/internal/infrastructure/http/middleware"
	"github.com/tastebite/platform/internal/infrastructure/security"
	"github.com/tastebite/platform/internal/ports/inbound"
	"github.com/tastebite/platform/internal/ports/outbound"
)

// stubRecipeService records the identity the browse handler saw so the
// route wiring around authentication can be asserted end to end.
type stubRecipeService struct {
	browseCalls  int
	browseUserID uuid.UUID
	browseAuthed bool
}

func (s *stubRecipeService) Browse(ctx context.Context, q inbound.BrowseQuery) (*recipe.Page, error) {
	s.browseCalls++
	s.browseUserID, s.browseAuthed = middleware.UserID(ctx)
	return &recipe.Page{Items: []recipe.Summary{}}, nil
}

func (s *stubRecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	return nil, nil
}
func (s *stubRecipeService) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	return nil, nil
}
func (s *stubRecipeService) DeleteRecipe(ctx context.Context, recipeID, actorID uuid.UUID, asAdmin bool) error {
	return nil
}
func (s *stubRecipeService) ImportExternalRecipe(ctx context.Context, externalID string, userID uuid.UUID) (*inbound.RecipeDTO, error) {
	return nil, nil
}
func (s *stubRecipeService) GenerateRecipe(ctx context.Context, cmd inbound.GenerateRecipeCommand) (*inbound.RecipeDTO, error) {
	return nil, nil
}
func (s *stubRecipeService) RateRecipe(ctx context.Context, recipeID, userID uuid.UUID, value int) (*inbound.RecipeDTO, error) {
	return nil, nil
}
func (s *stubRecipeService) CommentRecipe(ctx context.Context, recipeID, userID uuid.UUID, authorName, body string) (*inbound.CommentDTO, error) {
	return nil, nil
}
func (s *stubRecipeService) FavoriteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	return nil
}
func (s *stubRecipeService) UnfavoriteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	return nil
}
func (s *stubRecipeService) GetRecipe(ctx context.Context, recipeID uuid.UUID) (*inbound.RecipeDTO, error) {
	return nil, nil
}
func (s *stubRecipeService) GetCatalogRecipe(ctx context.Context, externalID string) (*outbound.CatalogRecipe, error) {
	return nil, nil
}
func (s *stubRecipeService) ListUserRecipes(ctx context.Context, userID uuid.UUID) ([]recipe.Summary, error) {
	return nil, nil
}
func (s *stubRecipeService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]recipe.Summary, error) {
	return nil, nil
}
func (s *stubRecipeService) ListComments(ctx context.Context, recipeID uuid.UUID) ([]inbound.CommentDTO, error) {
	return nil, nil
}
func (s *stubRecipeService) Categories(ctx context.Context) ([]outbound.CatalogCategory, error) {
	return nil, nil
}
func (s *stubRecipeService) Areas(ctx context.Context) ([]string, error) { return nil, nil }

type stubUserRepo struct{}

func (stubUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (stubUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return nil, user.ErrUserNotFound
}
func (stubUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}
func (stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}
func (stubUserRepo) FindAll(ctx context.Context) ([]*user.User, error) { return nil, nil }

type stubListRepo struct{}

func (stubListRepo) Save(ctx context.Context, l *shoppinglist.List) error { return nil }
func (stubListRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*shoppinglist.List, error) {
	return nil, shoppinglist.ErrListNotFound
}
func (stubListRepo) FindByShareToken(ctx context.Context, token string) (*shoppinglist.List, error) {
	return nil, shoppinglist.ErrListNotFound
}

type stubRecipeRepo struct{}

func (stubRecipeRepo) Create(ctx context.Context, r *recipe.Recipe) error { return nil }
func (stubRecipeRepo) Update(ctx context.Context, r *recipe.Recipe) error { return nil }
func (stubRecipeRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (stubRecipeRepo) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	return nil, recipe.ErrRecipeNotFound
}
func (stubRecipeRepo) FindAll(ctx context.Context) ([]*recipe.Recipe, error) { return nil, nil }
func (stubRecipeRepo) FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]*recipe.Recipe, error) {
	return nil, nil
}
func (stubRecipeRepo) FindByExternalID(ctx context.Context, externalID string) (*recipe.Recipe, error) {
	return nil, recipe.ErrRecipeNotFound
}
func (stubRecipeRepo) AddFavorite(ctx context.Context, recipeID, userID uuid.UUID) error { return nil }
func (stubRecipeRepo) RemoveFavorite(ctx context.Context, recipeID, userID uuid.UUID) error {
	return nil
}
func (stubRecipeRepo) IsFavorite(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	return false, nil
}
func (stubRecipeRepo) FindFavorites(ctx context.Context, userID uuid.UUID) ([]*recipe.Recipe, error) {
	return nil, nil
}

type stubCatalog struct{}

func (stubCatalog) Search(ctx context.Context, term string) ([]recipe.Summary, error) {
	return nil, nil
}
func (stubCatalog) FilterByCategory(ctx context.Context, category string) ([]recipe.Summary, error) {
	return nil, nil
}
func (stubCatalog) FilterByArea(ctx context.Context, area string) ([]recipe.Summary, error) {
	return nil, nil
}
func (stubCatalog) Categories(ctx context.Context) ([]outbound.CatalogCategory, error) {
	return nil, nil
}
func (stubCatalog) Areas(ctx context.Context) ([]string, error)                  { return nil, nil }
func (stubCatalog) Lookup(ctx context.Context, id string) (*outbound.CatalogRecipe, error) {
	return nil, nil
}

func newTestServer() (*Server, *stubRecipeService, *security.AuthService) {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.Issuer = "tastebite"
	cfg.Auth.JWTExpiration = time.Hour
	cfg.Server.WriteTimeout = 5 * time.Second

	log := zap.NewNop()
	auth := security.NewAuthService(cfg, log)
	stub := &stubRecipeService{}
	userSvc := userapp.NewService(stubUserRepo{}, auth, log)
	listSvc := listapp.NewService(stubListRepo{}, stubRecipeRepo{}, stubCatalog{}, log)

	return New(cfg, log, stub, userSvc, listSvc, auth), stub, auth
}

func TestRouteAuthentication(t *testing.T) {
	t.Run("AnonymousBrowse_PassesThrough", func(t *testing.T) {
		srv, stub, _ := newTestServer()

		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, stub.browseCalls)
		assert.False(t, stub.browseAuthed)
	})

	t.Run("BrowseWithToken_CarriesCallerIdentity", func(t *testing.T) {
		srv, stub, auth := newTestServer()
		userID := uuid.New()
		token, err := auth.Issue(userID, user.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, stub.browseAuthed)
		assert.Equal(t, userID, stub.browseUserID)
	})

	t.Run("BrowseWithBadToken_StaysAnonymous", func(t *testing.T) {
		srv, stub, _ := newTestServer()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, stub.browseAuthed)
	})

	t.Run("ProtectedRoute_RejectsAnonymous", func(t *testing.T) {
		srv, _, _ := newTestServer()

		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/recipes", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
