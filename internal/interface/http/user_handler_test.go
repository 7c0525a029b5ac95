package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	r, repo, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/users", "", gin.H{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.NotEmpty(t, w.Header().Get("x-auth"))
	body := decodeBody(t, w)
	assert.Equal(t, "a@x.com", body["email"])
	assert.NotEmpty(t, body["id"])
	assert.NotContains(t, w.Body.String(), "passwordHash")
	assert.NotContains(t, w.Body.String(), "tokens")

	require.Len(t, repo.users, 1)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	r, repo, _ := newTestServer(t)

	signup(t, r, "a@x.com", "secret1")

	w := doJSON(t, r, http.MethodPost, "/users", "", gin.H{"email": "a@x.com", "password": "other77"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, repo.users, 1)
}

func TestSignup_InvalidPayload(t *testing.T) {
	r, repo, _ := newTestServer(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"malformed email", gin.H{"email": "not-an-email", "password": "secret1"}},
		{"short password", gin.H{"email": "a@x.com", "password": "five5"}},
		{"missing email", gin.H{"password": "secret1"}},
		{"missing password", gin.H{"email": "a@x.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/users", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Empty(t, repo.users)
}

func TestLogin_AppendsNewToken(t *testing.T) {
	r, repo, _ := newTestServer(t)

	first := signup(t, r, "a@x.com", "secret1")

	w := doJSON(t, r, http.MethodPost, "/users/login", "", gin.H{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	second := w.Header().Get("x-auth")
	require.NotEmpty(t, second)
	assert.NotEqual(t, first, second)

	require.Len(t, repo.tokensOf("a@x.com"), 2)

	// both sessions stay valid
	for _, tok := range []string{first, second} {
		me := doJSON(t, r, http.MethodGet, "/users/me", tok, nil)
		assert.Equal(t, http.StatusOK, me.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	r, repo, _ := newTestServer(t)

	signup(t, r, "a@x.com", "secret1")

	w := doJSON(t, r, http.MethodPost, "/users/login", "", gin.H{"email": "a@x.com", "password": "wrongpw"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, repo.tokensOf("a@x.com"), 1)
}

func TestMe(t *testing.T) {
	r, _, _ := newTestServer(t)

	tok := signup(t, r, "a@x.com", "secret1")

	w := doJSON(t, r, http.MethodGet, "/users/me", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "a@x.com", body["email"])
}

func TestMe_Unauthenticated(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/users/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_RevokesPresentedTokenOnly(t *testing.T) {
	r, repo, _ := newTestServer(t)

	first := signup(t, r, "a@x.com", "secret1")
	login := doJSON(t, r, http.MethodPost, "/users/login", "", gin.H{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, login.Code)
	second := login.Header().Get("x-auth")

	w := doJSON(t, r, http.MethodDelete, "/users/me/token", first, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	// the revoked token no longer authenticates, even though its
	// signature is still valid
	me := doJSON(t, r, http.MethodGet, "/users/me", first, nil)
	assert.Equal(t, http.StatusUnauthorized, me.Code)

	// the other session is untouched
	me = doJSON(t, r, http.MethodGet, "/users/me", second, nil)
	assert.Equal(t, http.StatusOK, me.Code)

	require.Len(t, repo.tokensOf("a@x.com"), 1)
}
