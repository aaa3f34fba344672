package user

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("ValidInput_ShouldCreateActiveUser", func(t *testing.T) {
		u, err := New("Ada@Example.COM", "Ada", "correct-horse")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, u.ID())
		assert.Equal(t, "ada@example.com", u.Email(), "email is normalized")
		assert.Equal(t, RoleUser, u.Role())
		assert.True(t, u.IsActive())
		assert.False(t, u.IsAdmin())
		assert.Nil(t, u.LastLoginAt())
	})

	t.Run("PasswordIsHashed_NeverStoredPlain", func(t *testing.T) {
		u, err := New("ada@example.com", "Ada", "correct-horse")

		require.NoError(t, err)
		assert.NotEqual(t, "correct-horse", u.PasswordHash())
		assert.True(t, u.CheckPassword("correct-horse"))
		assert.False(t, u.CheckPassword("wrong"))
	})

	t.Run("InvalidEmail_ShouldReturnError", func(t *testing.T) {
		_, err := New("not-an-email", "Ada", "correct-horse")

		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("BlankName_ShouldReturnError", func(t *testing.T) {
		_, err := New("ada@example.com", "  ", "correct-horse")

		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("ShortPassword_ShouldReturnError", func(t *testing.T) {
		_, err := New("ada@example.com", "Ada", "short")

		assert.ErrorIs(t, err, ErrPasswordTooWeak)
	})
}

func TestAccountLifecycle(t *testing.T) {
	u, err := New("ada@example.com", "Ada", "correct-horse")
	require.NoError(t, err)

	u.RecordLogin()
	require.NotNil(t, u.LastLoginAt())

	u.Deactivate()
	assert.False(t, u.IsActive())

	u.Activate()
	assert.True(t, u.IsActive())
}

func TestRehydrate(t *testing.T) {
	id := uuid.New()

	u := Rehydrate(id, "root@example.com", "Root", "$2a$10$hash", RoleAdmin, true, true, time.Now(), nil)

	assert.Equal(t, id, u.ID())
	assert.True(t, u.IsAdmin())
	assert.True(t, u.IsSystem())
}
