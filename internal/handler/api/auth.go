package api

import (
	"net/http"

	"club-roster/internal/domain/auth"
	resdto "club-roster/internal/handler/dto/response"
	"club-roster/internal/handler/middleware"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes the operator behind the presented token. Tokens are
// issued out of band by cmd/token; there is no login endpoint.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// @Summary Get current operator
// @Description Subject and role carried by the bearer token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.OperatorResponse
// @Failure 401 {object} httperr.Response
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{"message": "Operator not authenticated"},
		})
		return
	}
	role, _ := middleware.GetRole(c)
	c.JSON(http.StatusOK, resdto.FromOperator(auth.Operator{Subject: subject, Role: role}))
}
