package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	golangjwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediashelf-backend/pkg/jwt"
)

func newAuthedRouter(t *testing.T, manager *jwt.Manager) (*gin.Engine, *uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen uuid.UUID
	router := gin.New()
	router.GET("/whoami", AuthMiddleware(manager), func(c *gin.Context) {
		id, _ := c.Get("userID")
		seen = id.(uuid.UUID)
		c.Status(http.StatusOK)
	})
	return router, &seen
}

func TestAuthMiddlewareSetsUserID(t *testing.T) {
	manager := jwt.NewManager("test-secret")
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID.String())
	require.NoError(t, err)

	router, seen := newAuthedRouter(t, manager)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, *seen)
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	manager := jwt.NewManager("test-secret")
	router, _ := newAuthedRouter(t, manager)

	// A correctly signed token whose type claim is not "access" must not
	// pass the access-token check.
	wrongType := golangjwt.NewWithClaims(golangjwt.SigningMethodHS256, jwt.Claims{
		UserID: uuid.NewString(),
		Type:   "refresh",
		RegisteredClaims: golangjwt.RegisteredClaims{
			ExpiresAt: golangjwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	refresh, err := wrongType.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"non-access token type", "Bearer " + refresh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
