package security

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tastebite/platform/internal/domain/user"
	"github.com/tastebite/platform/internal/infrastructure/config"
)

func newAuthService(secret, issuer string, expiration time.Duration) *AuthService {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = secret
	cfg.Auth.Issuer = issuer
	cfg.Auth.JWTExpiration = expiration
	return NewAuthService(cfg, zap.NewNop())
}

func TestIssueAndVerify(t *testing.T) {
	t.Run("RoundTrip_PreservesUserAndRole", func(t *testing.T) {
		auth := newAuthService("test-secret", "tastebite", time.Hour)
		userID := uuid.New()

		token, err := auth.Issue(userID, user.RoleAdmin)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := auth.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, string(user.RoleAdmin), claims.Role)
		assert.Equal(t, "tastebite", claims.Issuer)
	})

	t.Run("WrongSecret_IsRejected", func(t *testing.T) {
		userID := uuid.New()
		token, err := newAuthService("secret-a", "tastebite", time.Hour).Issue(userID, user.RoleUser)
		require.NoError(t, err)

		_, err = newAuthService("secret-b", "tastebite", time.Hour).Verify(token)

		assert.Error(t, err)
	})

	t.Run("WrongIssuer_IsRejected", func(t *testing.T) {
		token, err := newAuthService("test-secret", "someone-else", time.Hour).Issue(uuid.New(), user.RoleUser)
		require.NoError(t, err)

		_, err = newAuthService("test-secret", "tastebite", time.Hour).Verify(token)

		assert.Error(t, err)
	})

	t.Run("ExpiredToken_IsRejected", func(t *testing.T) {
		auth := newAuthService("test-secret", "tastebite", -time.Minute)
		token, err := auth.Issue(uuid.New(), user.RoleUser)
		require.NoError(t, err)

		_, err = auth.Verify(token)

		assert.Error(t, err)
	})

	t.Run("Garbage_IsRejected", func(t *testing.T) {
		auth := newAuthService("test-secret", "tastebite", time.Hour)

		_, err := auth.Verify("not.a.token")

		assert.Error(t, err)
	})
}
