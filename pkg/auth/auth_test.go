package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, VerifyPassword(hash, "correct horse battery"))
	assert.ErrorIs(t, VerifyPassword(hash, "wrong password"), ErrInvalidCredentials)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes))
	assert.NoError(t, err)

	_, err = HashPassword(strings.Repeat("a", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = HashPassword(strings.Repeat("é", 37))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestTokenAuth_IssueAndParse(t *testing.T) {
	ta := NewTokenAuth("test-secret", time.Hour)

	token, expiresAt, err := ta.Issue(42, "runner@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userID, err := ta.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenAuth_ParseRejects(t *testing.T) {
	ta := NewTokenAuth("test-secret", time.Hour)

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "Garbage",
			token: func(t *testing.T) string {
				return "not-a-token"
			},
		},
		{
			name: "Wrong secret",
			token: func(t *testing.T) string {
				token, _, err := NewTokenAuth("other-secret", time.Hour).Issue(1, "a@b.c")
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "Expired",
			token: func(t *testing.T) string {
				token, _, err := NewTokenAuth("test-secret", -time.Minute).Issue(1, "a@b.c")
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "Foreign issuer",
			token: func(t *testing.T) string {
				claims := jwt.RegisteredClaims{
					Issuer:    "someone-else",
					Subject:   "1",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
				require.NoError(t, err)
				return token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ta.Parse(tt.token(t))
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
