package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/integration/adapters"
	"github.com/bizledger/backend/internal/integration/entrypoint/dto"
	"github.com/bizledger/backend/internal/integration/entrypoint/middleware"
)

func TestAuthenticate(t *testing.T) {
	tokens := adapters.NewTokenService("auth-test-secret")
	owner := uuid.New()

	valid, err := tokens.IssueAccessToken(context.Background(), adapter.Principal{UserID: owner, Email: "owner@shop.test"}, time.Hour)
	require.NoError(t, err)
	foreign, err := adapters.NewTokenService("other-secret").IssueAccessToken(context.Background(), adapter.Principal{UserID: owner}, time.Hour)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/sales", middleware.NewAuthMiddleware(tokens).Authenticate(), func(c *gin.Context) {
		userID, ok := middleware.GetUserIDFromContext(c)
		require.True(t, ok)
		principal, ok := middleware.GetPrincipalFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "email": principal.Email})
	})

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, ""},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, ""},
		{"missing header", "", http.StatusUnauthorized, "AUTH-010003"},
		{"basic scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "AUTH-010001"},
		{"empty bearer", "Bearer   ", http.StatusUnauthorized, "AUTH-010003"},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized, "AUTH-010001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/sales", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status == http.StatusOK {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, owner.String(), body["user_id"])
				assert.Equal(t, "owner@shop.test", body["email"])
				return
			}

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, `Bearer realm="bizledger"`, w.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestGetUserIDFromContext_Unauthenticated(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := middleware.GetUserIDFromContext(c)
	assert.False(t, ok)
	_, ok = middleware.GetPrincipalFromContext(c)
	assert.False(t, ok)

	c.Set(string(middleware.UserIDKey), uuid.Nil)
	_, ok = middleware.GetUserIDFromContext(c)
	assert.False(t, ok)
}
