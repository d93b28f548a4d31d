package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aayush-Sood101/newspaper-management-backend/internal/config"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/domain/models"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/repository/stubs"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/service/auth"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *stubs.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := stubs.NewStore()
	hash, err := auth.HashPassword("hunter2!")
	require.NoError(t, err)
	store.AddUser(models.User{Email: "admin@example.com", Password: hash, Role: models.RoleAdmin})

	svc := auth.NewService(store, config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}, nil)
	h := NewAuthHandler(svc, store, nil)

	r := gin.New()
	r.POST("/api/auth/signin", h.SignIn)
	r.GET("/api/auth/verify", h.Verify)
	return r, store
}

func signIn(t *testing.T, r *gin.Engine, email, password string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(gin.H{"email": email, "password": password})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSignInIssuesToken(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := signIn(t, r, "admin@example.com", "hunter2!")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Sign in successful", resp.Message)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin@example.com", resp.User.Email)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
}

func TestSignInGenericFailure(t *testing.T) {
	r, _ := newAuthRouter(t)

	unknown := signIn(t, r, "nobody@example.com", "hunter2!")
	wrong := signIn(t, r, "admin@example.com", "wrong")

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	// The two failure modes must be indistinguishable on the wire.
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
}

func TestSignInMissingFields(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", strings.NewReader(`{"email":"admin@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyRoundTrip(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := signIn(t, r, "admin@example.com", "hunter2!")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	vw := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	r.ServeHTTP(vw, req)

	require.Equal(t, http.StatusOK, vw.Code)

	var identity struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(vw.Body.Bytes(), &identity))
	assert.Equal(t, "admin@example.com", identity.Email)
	assert.Equal(t, models.RoleAdmin, identity.Role)
}

func TestVerifyWithoutToken(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
