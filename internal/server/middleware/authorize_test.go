package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Aayush-Sood101/newspaper-management-backend/internal/domain/models"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/service/auth"
)

type fakeVerifier struct {
	identity *auth.Identity
	err      error
}

func (f fakeVerifier) ParseToken(string) (*auth.Identity, error) {
	return f.identity, f.err
}

func newGateRouter(verifier TokenVerifier, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Authorize(verifier, roles...), func(c *gin.Context) {
		identity, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "identity missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": identity.Role})
	})
	return r
}

func TestAuthorizeMissingHeader(t *testing.T) {
	r := newGateRouter(fakeVerifier{}, models.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"No token provided"}`, w.Body.String())
}

func TestAuthorizeMalformedHeader(t *testing.T) {
	r := newGateRouter(fakeVerifier{}, models.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"No token provided"}`, w.Body.String())
}

func TestAuthorizeInvalidToken(t *testing.T) {
	r := newGateRouter(fakeVerifier{err: auth.ErrInvalidToken}, models.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Invalid token"}`, w.Body.String())
}

func TestAuthorizeDisallowedRole(t *testing.T) {
	verifier := fakeVerifier{identity: &auth.Identity{ID: "1", Role: models.RoleUser}}
	r := newGateRouter(verifier, models.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Forbidden"}`, w.Body.String())
}

func TestAuthorizeAllowedRole(t *testing.T) {
	verifier := fakeVerifier{identity: &auth.Identity{ID: "1", Role: models.RoleAdmin}}
	r := newGateRouter(verifier, models.RoleUser, models.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":"admin"}`, w.Body.String())
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name   string
		header string
		want   string
	}{
		{name: "standard", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing", header: "", want: ""},
		{name: "wrong scheme", header: "Basic abc", want: ""},
		{name: "bare token", header: "abc.def.ghi", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				c.Request.Header.Set("Authorization", tc.header)
			}
			assert.Equal(t, tc.want, BearerToken(c))
		})
	}
}
