//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"club-roster/internal/domain/auth"
	"club-roster/internal/pkg/config"
	"club-roster/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, subject string, role auth.Role) string {
	t.Helper()
	duration, err := h.cfg.TokenDuration()
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(subject, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) AdminToken(t *testing.T) string {
	t.Helper()
	return h.GenerateToken(t, "admin@club.test", auth.RoleAdmin)
}

func (h *JWTHelper) ViewerToken(t *testing.T) string {
	t.Helper()
	return h.GenerateToken(t, "viewer@club.test", auth.RoleViewer)
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, subject string, role auth.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, 1*time.Millisecond)
	token, err := service.GenerateToken(subject, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
