package recipe

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RecipeEntityTestSuite covers the Recipe aggregate root.
type RecipeEntityTestSuite struct {
	suite.Suite
	authorID uuid.UUID
}

func (s *RecipeEntityTestSuite) SetupTest() {
	s.authorID = uuid.New()
}

func (s *RecipeEntityTestSuite) newRecipe() *Recipe {
	r, err := NewRecipe("Spaghetti Carbonara", "Pasta", "Italian", s.authorID, "Ada")
	s.Require().NoError(err)
	return r
}

func (s *RecipeEntityTestSuite) TestCreation() {
	s.Run("ValidRecipe_ShouldCreateSuccessfully", func() {
		r, err := NewRecipe("Spaghetti Carbonara", "Pasta", "Italian", s.authorID, "Ada")

		require.NoError(s.T(), err)
		require.NotNil(s.T(), r)
		assert.NotEqual(s.T(), uuid.Nil, r.ID())
		assert.Equal(s.T(), "Spaghetti Carbonara", r.Title())
		assert.Equal(s.T(), s.authorID, r.AuthorID())
		assert.Equal(s.T(), "Ada", r.AuthorName())
		assert.False(s.T(), r.IsImported())
		assert.NotZero(s.T(), r.CreatedAt())
	})

	s.Run("ShortTitle_ShouldReturnError", func() {
		_, err := NewRecipe("ab", "Pasta", "Italian", s.authorID, "Ada")

		assert.ErrorIs(s.T(), err, ErrTitleTooShort)
	})

	s.Run("OverlongTitle_ShouldReturnError", func() {
		_, err := NewRecipe(strings.Repeat("x", 201), "Pasta", "Italian", s.authorID, "Ada")

		assert.ErrorIs(s.T(), err, ErrTitleTooLong)
	})
}

func (s *RecipeEntityTestSuite) TestImport() {
	s.Run("ValidCatalogRecipe_ShouldCreateMirror", func() {
		r, err := NewImportedRecipe("52772", "Teriyaki Chicken Casserole", "Chicken", "Japanese", "https://example.test/thumb.jpg", s.authorID)

		require.NoError(s.T(), err)
		assert.True(s.T(), r.IsImported())
		assert.Equal(s.T(), "52772", r.ExternalID())
		assert.Zero(s.T(), r.AverageRating())
		assert.Zero(s.T(), r.RatingsCount())
	})

	s.Run("MissingExternalID_ShouldReturnError", func() {
		_, err := NewImportedRecipe("", "Teriyaki Chicken Casserole", "Chicken", "Japanese", "", s.authorID)

		assert.ErrorIs(s.T(), err, ErrExternalIDRequired)
	})
}

func (s *RecipeEntityTestSuite) TestIngredients() {
	s.Run("ValidIngredients_ShouldBeStored", func() {
		r := s.newRecipe()

		err := r.SetIngredients([]Ingredient{
			{Name: "Spaghetti", Measure: "200g"},
			{Name: "Egg", Measure: "2"},
			{Name: "Black pepper", Measure: ""},
		})

		require.NoError(s.T(), err)
		assert.Len(s.T(), r.Ingredients(), 3)
	})

	s.Run("InvalidMeasure_ShouldRejectWholeList", func() {
		r := s.newRecipe()

		err := r.SetIngredients([]Ingredient{{Name: "Spaghetti", Measure: "a handful"}})

		assert.ErrorIs(s.T(), err, ErrInvalidMeasure)
		assert.Empty(s.T(), r.Ingredients())
	})

	s.Run("BlankName_ShouldReturnError", func() {
		r := s.newRecipe()

		err := r.SetIngredients([]Ingredient{{Name: "  ", Measure: "100g"}})

		assert.ErrorIs(s.T(), err, ErrIngredientNameRequired)
	})
}

func (s *RecipeEntityTestSuite) TestInstructions() {
	s.Run("BlankStep_ShouldReturnError", func() {
		r := s.newRecipe()

		err := r.SetInstructions([]string{"Boil the pasta", "   "})

		assert.ErrorIs(s.T(), err, ErrEmptyInstruction)
	})
}

func (s *RecipeEntityTestSuite) TestRating() {
	s.Run("Rate_ShouldRecomputeAverage", func() {
		r := s.newRecipe()

		require.NoError(s.T(), r.Rate(uuid.New(), 5))
		require.NoError(s.T(), r.Rate(uuid.New(), 2))

		assert.Equal(s.T(), 3.5, r.AverageRating())
		assert.Equal(s.T(), 2, r.RatingsCount())
	})

	s.Run("SecondRatingBySameUser_ShouldReplace", func() {
		r := s.newRecipe()
		raterID := uuid.New()

		require.NoError(s.T(), r.Rate(raterID, 5))
		require.NoError(s.T(), r.Rate(raterID, 1))

		assert.Equal(s.T(), 1, r.RatingsCount())
		assert.Equal(s.T(), 1.0, r.AverageRating())
	})

	s.Run("AuthorRatesOwnRecipe_ShouldReturnError", func() {
		r := s.newRecipe()

		err := r.Rate(s.authorID, 4)

		assert.ErrorIs(s.T(), err, ErrCannotRateOwnRecipe)
	})

	s.Run("ImporterRatesImportedRecipe_ShouldBeAllowed", func() {
		r, err := NewImportedRecipe("52772", "Teriyaki Chicken Casserole", "Chicken", "Japanese", "", s.authorID)
		require.NoError(s.T(), err)

		assert.NoError(s.T(), r.Rate(s.authorID, 4))
	})

	s.Run("OutOfRangeValue_ShouldReturnError", func() {
		r := s.newRecipe()

		assert.ErrorIs(s.T(), r.Rate(uuid.New(), 0), ErrInvalidRating)
		assert.ErrorIs(s.T(), r.Rate(uuid.New(), 6), ErrInvalidRating)
	})
}

func (s *RecipeEntityTestSuite) TestComments() {
	s.Run("ValidComment_ShouldBeAppended", func() {
		r := s.newRecipe()

		comment, err := r.AddComment(uuid.New(), "Grace", "Lovely and quick to make.")

		require.NoError(s.T(), err)
		assert.NotEqual(s.T(), uuid.Nil, comment.ID)
		assert.Equal(s.T(), "Grace", comment.Author)
		assert.Len(s.T(), r.Comments(), 1)
	})

	s.Run("BlankBody_ShouldReturnError", func() {
		r := s.newRecipe()

		_, err := r.AddComment(uuid.New(), "Grace", "   ")

		assert.ErrorIs(s.T(), err, ErrEmptyComment)
	})

	s.Run("OverlongBody_ShouldReturnError", func() {
		r := s.newRecipe()

		_, err := r.AddComment(uuid.New(), "Grace", strings.Repeat("x", 1001))

		assert.ErrorIs(s.T(), err, ErrCommentTooLong)
	})
}

func (s *RecipeEntityTestSuite) TestFavorites() {
	r := s.newRecipe()

	r.Favorite()
	r.Favorite()
	r.Unfavorite()

	assert.Equal(s.T(), 1, r.Favorites())

	r.Unfavorite()
	r.Unfavorite()
	assert.Zero(s.T(), r.Favorites(), "counter never goes negative")
}

func (s *RecipeEntityTestSuite) TestSummaryProjection() {
	s.Run("UserAuthoredRecipe_CarriesAuthorFields", func() {
		r := s.newRecipe()
		require.NoError(s.T(), r.Rate(uuid.New(), 4))

		summary := r.Summary()

		assert.Equal(s.T(), r.ID().String(), summary.ID)
		assert.False(s.T(), summary.External)
		assert.Equal(s.T(), s.authorID.String(), summary.AuthorID)
		assert.Equal(s.T(), "Ada", summary.AuthorName)
		assert.Equal(s.T(), 4.0, summary.AverageRating)
		assert.Equal(s.T(), 1, summary.RatingsCount)
	})

	s.Run("ImportedRecipe_OmitsAuthorFields", func() {
		r, err := NewImportedRecipe("52772", "Teriyaki Chicken Casserole", "Chicken", "Japanese", "", s.authorID)
		require.NoError(s.T(), err)

		summary := r.Summary()

		assert.Equal(s.T(), "52772", summary.ExternalID)
		assert.Empty(s.T(), summary.AuthorID)
		assert.Empty(s.T(), summary.AuthorName)
	})
}

func TestRecipeEntityTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeEntityTestSuite))
}
