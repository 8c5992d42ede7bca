// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/adapter"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/integration/entrypoint/dto"
)

// ContextKey names values the middleware stores on the gin context.
type ContextKey string

// UserIDKey holds the uuid.UUID of the ledger owner making the request.
const UserIDKey ContextKey = "user_id"

const principalKey ContextKey = "principal"

// AuthMiddleware resolves the ledger owner from a bearer token.
type AuthMiddleware struct {
	tokens adapter.TokenService
}

func NewAuthMiddleware(tokens adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate rejects requests without a valid access token and scopes the
// rest of the chain to the token's owner.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, code, msg := bearerToken(c.GetHeader("Authorization"))
		if code != "" {
			unauthorized(c, code, msg)
			return
		}

		principal, err := m.tokens.VerifyAccessToken(c.Request.Context(), raw)
		if errors.Is(err, domainerror.ErrExpiredToken) {
			unauthorized(c, domainerror.ErrCodeExpiredToken, "Access token has expired")
			return
		}
		if err != nil {
			unauthorized(c, domainerror.ErrCodeInvalidToken, "Access token is invalid")
			return
		}

		c.Set(string(UserIDKey), principal.UserID)
		c.Set(string(principalKey), principal)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header. A non-empty
// code means the header is unusable.
func bearerToken(header string) (string, domainerror.AuthErrorCode, string) {
	if header == "" {
		return "", domainerror.ErrCodeMissingToken, "Authorization header is required"
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", domainerror.ErrCodeInvalidToken, "Authorization header must use the Bearer scheme"
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domainerror.ErrCodeMissingToken, "Bearer token is empty"
	}
	return token, "", ""
}

func unauthorized(c *gin.Context, code domainerror.AuthErrorCode, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="bizledger"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: msg,
		Code:  string(code),
	})
}

// GetUserIDFromContext returns the authenticated ledger owner.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	id, ok := c.Get(string(UserIDKey))
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := id.(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}

// GetPrincipalFromContext returns the verified token principal, if any.
func GetPrincipalFromContext(c *gin.Context) (*adapter.Principal, bool) {
	v, ok := c.Get(string(principalKey))
	if !ok {
		return nil, false
	}
	p, ok := v.(*adapter.Principal)
	return p, ok
}
