package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrTitleTooShort          = errors.New("recipe title must be at least 3 characters")
	ErrTitleTooLong           = errors.New("recipe title must not exceed 200 characters")
	ErrIngredientNameRequired = errors.New("ingredient name is required")
	ErrInvalidMeasure         = errors.New("measure must be a number with an optional unit, e.g. 100g")
	ErrEmptyInstruction       = errors.New("instruction step must not be empty")
	ErrExternalIDRequired     = errors.New("imported recipe requires an external id")

	// Interaction errors
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrCannotRateOwnRecipe = errors.New("cannot rate your own recipe")
	ErrEmptyComment        = errors.New("comment must not be empty")
	ErrCommentTooLong      = errors.New("comment must not exceed 1000 characters")

	// Lookup errors
	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrAlreadyImported  = errors.New("recipe already imported from catalog")
	ErrNotRecipeOwner   = errors.New("only the recipe owner can perform this action")
)
