package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Minute, time.Hour)

	access, refresh, err := m.IssuePair(domain.Identity{UserID: 5, IsStaff: true})
	require.NoError(t, err)

	identity, err := m.Parse(access, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{UserID: 5, IsStaff: true}, *identity)

	identity, err = m.Parse(refresh, RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, int64(5), identity.UserID)
}

func TestTokenManager_ParseRejects(t *testing.T) {
	m := NewTokenManager("secret", time.Minute, time.Hour)
	access, err := m.Issue(domain.Identity{UserID: 1}, AccessToken)
	require.NoError(t, err)

	expired, err := NewTokenManager("secret", -time.Minute, time.Hour).Issue(domain.Identity{UserID: 1}, AccessToken)
	require.NoError(t, err)

	foreign, err := NewTokenManager("other", time.Minute, time.Hour).Issue(domain.Identity{UserID: 1}, AccessToken)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		typ   TokenType
	}{
		{"empty", "", AccessToken},
		{"garbage", "not-a-token", AccessToken},
		{"wrong type", access, RefreshToken},
		{"expired", expired, AccessToken},
		{"wrong secret", foreign, AccessToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Parse(tt.token, tt.typ)
			assert.True(t, errors.Is(err, domain.ErrUnauthorized))
		})
	}
}

func newRouter(m *TokenManager, policy gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(Authenticate(m))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	g := r.Group("/", policy)
	g.GET("/resource", ok)
	g.POST("/resource", ok)
	return r
}

func do(r http.Handler, method, token string) int {
	req := httptest.NewRequest(method, "/resource", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestReadAuthenticated(t *testing.T) {
	m := NewTokenManager("secret", time.Minute, time.Hour)
	user, _ := m.Issue(domain.Identity{UserID: 1}, AccessToken)
	admin, _ := m.Issue(domain.Identity{UserID: 2, IsStaff: true}, AccessToken)
	refresh, _ := m.Issue(domain.Identity{UserID: 1}, RefreshToken)
	r := newRouter(m, ReadAuthenticated())

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, ""))
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "junk"))
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, refresh))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, user))
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, user))
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, admin))
}

func TestAdminOnlyAndAuthenticated(t *testing.T) {
	m := NewTokenManager("secret", time.Minute, time.Hour)
	user, _ := m.Issue(domain.Identity{UserID: 1}, AccessToken)
	admin, _ := m.Issue(domain.Identity{UserID: 2, IsStaff: true}, AccessToken)

	adminOnly := newRouter(m, AdminOnly())
	assert.Equal(t, http.StatusUnauthorized, do(adminOnly, http.MethodGet, ""))
	assert.Equal(t, http.StatusForbidden, do(adminOnly, http.MethodGet, user))
	assert.Equal(t, http.StatusOK, do(adminOnly, http.MethodPost, admin))

	owner := newRouter(m, Authenticated())
	assert.Equal(t, http.StatusUnauthorized, do(owner, http.MethodPost, ""))
	assert.Equal(t, http.StatusOK, do(owner, http.MethodPost, user))
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	r := newRouter(NewTokenManager("secret", time.Minute, time.Hour), Authenticated())
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"Unauthorized"`)
}
