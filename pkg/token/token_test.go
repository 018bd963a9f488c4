package token

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate(42, "a@b.com", secret, time.Hour)
	require.NoError(t, err)

	claims, err := Parse(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Generate(1, "a@b.com", secret, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(tok, secret)
	assert.Error(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Generate(1, "a@b.com", secret, time.Hour)
	require.NoError(t, err)

	_, err = Parse(tok, "other-secret")
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse("not.a.token", secret)
	assert.Error(t, err)
}

func TestExtract(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", Extract(r))

	r2, _ := http.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", Extract(r2))

	r3, _ := http.NewRequest(http.MethodGet, "/", nil)
	r3.Header.Set("Authorization", "Basic abc123")
	assert.Equal(t, "", Extract(r3))
}
