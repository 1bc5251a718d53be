package util

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndParseJWT(t *testing.T) {
	in := Claims{
		UserID:   "u1",
		Email:    "a@x.com",
		Username: "alice",
	}

	token, err := GenerateJWT(in, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	out, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT(Claims{UserID: "u1"}, testSecret)
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWT_Garbage(t *testing.T) {
	_, err := ParseJWT("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	t.Run("cookie wins over header", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
		r.Header.Set("Authorization", "Bearer from-header")

		assert.Equal(t, "from-cookie", ExtractToken(r))
	})

	t.Run("bearer header fallback", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer from-header")

		assert.Equal(t, "from-header", ExtractToken(r))
	})

	t.Run("non-bearer scheme ignored", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		assert.Empty(t, ExtractToken(r))
	})

	t.Run("no credentials", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, ExtractToken(r))
	})
}
