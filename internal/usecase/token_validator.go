package usecase

import (
	"club-roster/internal/domain/auth"
	"club-roster/internal/pkg/jwt"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (auth.Operator, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (auth.Operator, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return auth.Operator{}, err
	}

	role, err := auth.NewRole(claims.Role)
	if err != nil {
		return auth.Operator{}, err
	}

	return auth.Operator{Subject: claims.Subject, Role: role}, nil
}
