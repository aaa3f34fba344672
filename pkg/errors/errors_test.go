package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"Validation", NewValidationError("bad measure"), http.StatusBadRequest},
		{"InvalidCredentials", NewInvalidCredentialsError(), http.StatusUnauthorized},
		{"NotOwner", NewNotOwnerError("delete this recipe"), http.StatusForbidden},
		{"RecipeNotFound", NewRecipeNotFoundError("abc"), http.StatusNotFound},
		{"EmailAlreadyExists", NewEmailAlreadyExistsError("ada@example.com"), http.StatusConflict},
		{"AlreadyImported", NewAlreadyImportedError("52772"), http.StatusConflict},
		{"Catalog", NewCatalogError(stderrors.New("timeout")), http.StatusBadGateway},
		{"AI", NewAIError(stderrors.New("no choices")), http.StatusBadGateway},
		{"Database", NewDatabaseError("create recipe", stderrors.New("locked")), http.StatusInternalServerError},
		{"Internal", NewInternalError(""), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("NilError_StaysNil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "whatever"))
	})

	t.Run("AppError_PassesThroughUnchanged", func(t *testing.T) {
		original := NewRecipeNotFoundError("abc")

		wrapped := Wrap(original, "context")

		assert.Same(t, original, wrapped)
	})

	t.Run("PlainError_BecomesInternalWithCause", func(t *testing.T) {
		cause := stderrors.New("boom")

		wrapped := Wrap(cause, "something broke")

		assert.Equal(t, CodeInternal, wrapped.Code)
		assert.ErrorIs(t, wrapped, cause)
	})
}

func TestCodeHelpers(t *testing.T) {
	err := NewCatalogError(stderrors.New("timeout"))

	assert.True(t, Is(err, CodeCatalogError))
	assert.False(t, Is(err, CodeAIError))
	assert.False(t, Is(stderrors.New("plain"), CodeCatalogError))

	assert.Equal(t, CodeCatalogError, GetCode(err))
	assert.Equal(t, CodeInternal, GetCode(stderrors.New("plain")))
}

func TestToErrorResponse(t *testing.T) {
	appErr := NewRecipeNotFoundError("52772")

	resp := ToErrorResponse(appErr, "req-123")

	require.Equal(t, CodeRecipeNotFound, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.NotZero(t, resp.Error.Timestamp)
	assert.Equal(t, "52772", resp.Error.Metadata["recipe_id"])
}

func TestErrorString(t *testing.T) {
	assert.Equal(t,
		"VALIDATION_FAILED: Validation failed (bad measure)",
		NewValidationError("bad measure").Error())
	assert.Equal(t,
		"BAD_REQUEST: Invalid request body",
		NewBadRequestError("Invalid request body").Error())
}
