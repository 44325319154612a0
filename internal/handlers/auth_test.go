package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rahafha1/project-manager-api/internal/auth"
	"github.com/rahafha1/project-manager-api/internal/constants"
	"github.com/rahafha1/project-manager-api/internal/dto"
	"github.com/rahafha1/project-manager-api/internal/middleware"
	"github.com/rahafha1/project-manager-api/internal/repository"
	"github.com/rahafha1/project-manager-api/internal/services"
	"github.com/rahafha1/project-manager-api/internal/testutil"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	tokens, err := auth.NewTokenManager("test-secret", time.Minute, time.Hour)
	require.NoError(t, err)
	authService := services.NewAuthService(repository.NewUserRepository(db), tokens)
	handler := NewAuthHandler(authService)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/refresh", handler.Refresh)
	r.POST("/api/auth/logout", handler.Logout)
	r.GET("/api/auth/me", middleware.RequireAuth(authService), handler.GetCurrentUser)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/api/auth/register", map[string]string{
		"username": "newuser",
		"email":    "new@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var user dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	require.Equal(t, "newuser", user.Username)

	w = postJSON(t, r, "/api/auth/register", map[string]string{
		"username": "newuser",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(t, r, "/api/auth/register", map[string]string{
		"username": "short",
		"password": "abc",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/api/auth/register", map[string]string{
		"username": "bademail",
		"email":    "not-an-email",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_LoginSessionAndTokens(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/api/auth/register", map[string]string{"username": "existing", "password": "supersecret"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/auth/login", map[string]string{"username": "existing", "password": "wrong-password"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, r, "/api/auth/login", map[string]string{"username": "existing", "password": "supersecret"})
	require.Equal(t, http.StatusOK, w.Code)

	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Access)
	require.NotEmpty(t, login.Refresh)
	require.Equal(t, "existing", login.User.Username)
	require.False(t, login.User.IsSuperuser)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Access)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/api/auth/refresh", map[string]string{"refresh": login.Refresh})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/api/auth/refresh", map[string]string{"refresh": login.Access})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/api/auth/logout", map[string]string{})
	require.Equal(t, http.StatusOK, w.Code)
}
