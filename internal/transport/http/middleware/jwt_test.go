package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailydiet/internal/model"
	"dailydiet/internal/pkg/jwtutil"
)

type fakeUserLoader struct {
	users map[string]*model.User
	calls int
}

func (f *fakeUserLoader) GetUserByID(id string) (*model.User, error) {
	f.calls++
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, nil
}

func newProtectedRouter(loader *fakeUserLoader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthJWT("secret", loader), func(c *gin.Context) {
		userID, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	loader := &fakeUserLoader{users: map[string]*model.User{}}
	rec := doRequest(newProtectedRouter(loader), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// rejected before the credential store is ever consulted
	assert.Equal(t, 0, loader.calls)
}

func TestAuthJWT_WrongScheme(t *testing.T) {
	loader := &fakeUserLoader{users: map[string]*model.User{}}
	rec := doRequest(newProtectedRouter(loader), "Basic abc123")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, loader.calls)
}

func TestAuthJWT_InvalidToken(t *testing.T) {
	loader := &fakeUserLoader{users: map[string]*model.User{}}
	rec := doRequest(newProtectedRouter(loader), "Bearer not.a.jwt")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, loader.calls)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token, err := jwtutil.GenerateToken("other-secret", time.Hour, "user-1")
	require.NoError(t, err)

	loader := &fakeUserLoader{users: map[string]*model.User{}}
	rec := doRequest(newProtectedRouter(loader), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, loader.calls)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	token, err := jwtutil.GenerateToken("secret", -time.Minute, "user-1")
	require.NoError(t, err)

	loader := &fakeUserLoader{users: map[string]*model.User{}}
	rec := doRequest(newProtectedRouter(loader), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_UserNoLongerExists(t *testing.T) {
	token, err := jwtutil.GenerateToken("secret", time.Hour, "ghost")
	require.NoError(t, err)

	loader := &fakeUserLoader{users: map[string]*model.User{}}
	rec := doRequest(newProtectedRouter(loader), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 1, loader.calls)
}

func TestAuthJWT_ValidToken(t *testing.T) {
	token, err := jwtutil.GenerateToken("secret", time.Hour, "user-1")
	require.NoError(t, err)

	loader := &fakeUserLoader{users: map[string]*model.User{
		"user-1": {ID: "user-1", Name: "Alice"},
	}}
	rec := doRequest(newProtectedRouter(loader), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":"user-1"}`, rec.Body.String())
}
