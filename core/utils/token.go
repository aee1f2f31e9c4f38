package utils

import (
	"fmt"
	"strings"
	"time"

	"sponsorsync-api/core/config"
	"sponsorsync-api/core/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TokenClaims is the JWT payload carried on authenticated requests
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	Scope  string    `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed JWT for the given user and scope
func GenerateToken(userID uuid.UUID, email *string, scope string) (string, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return "", fmt.Errorf("config not initialized")
	}

	ttl := time.Duration(cfg.JWT.AccessTokenTTL) * time.Hour
	if scope == constants.ScopeTokenRefresh {
		ttl = time.Duration(cfg.JWT.RefreshTokenTTL) * time.Hour
	}

	claims := &TokenClaims{
		UserID: userID,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	if email != nil {
		claims.Email = *email
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ValidateAndParseToken verifies the signature and expiry of a bearer
// token and returns its claims
func ValidateAndParseToken(tokenString string) (*TokenClaims, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, fmt.Errorf("config not initialized")
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// GetTokenData returns the claims stored by the auth middleware
func GetTokenData(ctx echo.Context) (*TokenClaims, error) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*TokenClaims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("token data not found in context")
	}
	return claims, nil
}

// GetTokenFromHeader extracts the bearer token from the Authorization header
func GetTokenFromHeader(ctx echo.Context) (string, error) {
	header := ctx.Request().Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("invalid authorization header format")
	}

	return strings.TrimSpace(parts[1]), nil
}
