package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker/internal/dto"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
)

func TestAuthHandler_Signup(t *testing.T) {
	env := setupHandlerTestEnv(t)

	user, _ := env.signupUser(t, "newuser")
	require.Equal(t, "newuser", user.Username)
}

func TestAuthHandler_Signup_WeakPassword(t *testing.T) {
	env := setupHandlerTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username":         "newuser",
		"password":         "short",
		"password_confirm": "short",
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var apiErr apierrors.APIError
	decodeJSON(t, w, &apiErr)
	require.Equal(t, apierrors.ErrCodeInvalidInput, apiErr.Code)
	require.NotNil(t, apiErr.Details)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupHandlerTestEnv(t)
	env.signupUser(t, "existing")

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "existing",
		"password": "NewPass123",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var user dto.UserDTO
	decodeJSON(t, w, &user)
	require.Equal(t, "existing", user.Username)
	require.NotEmpty(t, w.Result().Cookies(), "expected session cookie to be set")
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupHandlerTestEnv(t)
	env.signupUser(t, "existing")

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "existing",
		"password": "WrongPass1",
	}, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupHandlerTestEnv(t)
	user, cookies := env.signupUser(t, "current-user")

	w := env.do(t, http.MethodGet, "/api/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var me dto.UserDTO
	decodeJSON(t, w, &me)
	require.Equal(t, user.ID, me.ID)
}

func TestAuthHandler_GetCurrentUser_Anonymous(t *testing.T) {
	env := setupHandlerTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/auth/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupHandlerTestEnv(t)
	_, cookies := env.signupUser(t, "leaver")

	w := env.do(t, http.MethodPost, "/api/auth/logout", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// The old session no longer authenticates
	w = env.do(t, http.MethodGet, "/api/auth/me", nil, w.Result().Cookies())
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
