package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupLoginFlow(t *testing.T) {
	env := newTestEnv(t)
	creds := gin.H{"email": "new@example.com", "password": "correct-horse"}

	w := env.do(t, http.MethodPost, "/api/signup", creds, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/signup", creds, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, "/api/login", gin.H{"email": "new@example.com", "password": "wrong-password"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/login", gin.H{"email": "nobody@example.com", "password": "correct-horse"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/login", creds, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, tokenCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	claims, err := env.tokens.Validate(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", claims.Email)

	w = env.do(t, http.MethodPost, "/api/profiles", gin.H{"accountId": "UA-9"}, cookies[0].Value)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/signup", gin.H{"email": "not-an-email", "password": "correct-horse"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(t, http.MethodPost, "/api/signup", gin.H{"email": "a@example.com", "password": "short"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/logout", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, tokenCookie, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}
