//go:build unit

package jwt

import (
	"testing"
	"time"

	"club-roster/internal/domain/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := NewService("secret", time.Hour)

	token, err := svc.GenerateToken("ops@club.dk", auth.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@club.dk", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestService_GeneratesSubject(t *testing.T) {
	svc := NewService("secret", time.Hour)

	token, err := svc.GenerateToken("", auth.RoleViewer)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.Subject)
}

func TestService_Rejects(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewService("one", time.Hour).GenerateToken("x", auth.RoleViewer)
		require.NoError(t, err)

		_, err = NewService("two", time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		svc := NewService("secret", time.Minute)
		issued := time.Now().Add(-time.Hour)
		svc.now = func() time.Time { return issued }
		token, err := svc.GenerateToken("x", auth.RoleViewer)
		require.NoError(t, err)

		svc.now = time.Now
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := NewService("secret", time.Hour).ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
