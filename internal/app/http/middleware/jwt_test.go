package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"media-access/internal/domain/access"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newTestRouter(resolve PrincipalResolver) *gin.Engine {
	r := gin.New()
	r.GET("/whoami", AuthMiddleware(testSecret), LoadPrincipal(resolve), func(c *gin.Context) {
		p, _ := CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role})
	})
	r.POST("/upload", AuthMiddleware(testSecret), LoadPrincipal(resolve), RequireCapability(access.CapUploadFiles), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func resolveRole(role string) PrincipalResolver {
	return func(_ context.Context, id uint) (access.Principal, error) {
		return access.Principal{ID: id, Role: role, Capabilities: access.CapabilitiesFor(role)}, nil
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r := newTestRouter(resolveRole(access.RoleCurator))
	token := signedToken(t, testSecret, jwt.MapClaims{
		"user_id": 7,
		"role":    access.RoleCurator,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"role":"curator"}`, w.Body.String())
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	r := newTestRouter(resolveRole(access.RoleCurator))

	expired := signedToken(t, testSecret, jwt.MapClaims{"user_id": 7, "exp": time.Now().Add(-time.Hour).Unix()})
	wrongKey := signedToken(t, "other", jwt.MapClaims{"user_id": 7})
	noUser := signedToken(t, testSecret, jwt.MapClaims{"role": "curator"})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Token abc"},
		{"garbage", "Bearer abc"},
		{"expired", "Bearer " + expired},
		{"wrong key", "Bearer " + wrongKey},
		{"no user id", "Bearer " + noUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestLoadPrincipal_UnknownUser(t *testing.T) {
	r := newTestRouter(func(context.Context, uint) (access.Principal, error) {
		return access.Principal{}, errors.New("not found")
	})
	token := signedToken(t, testSecret, jwt.MapClaims{"user_id": 7})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireCapability(t *testing.T) {
	token := signedToken(t, testSecret, jwt.MapClaims{"user_id": 7})

	for role, want := range map[string]int{
		access.RoleCurator: http.StatusNoContent,
		"subscriber":       http.StatusForbidden,
	} {
		r := newTestRouter(resolveRole(role))
		req := httptest.NewRequest(http.MethodPost, "/upload", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, role)
	}
}
