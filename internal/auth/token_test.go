package auth_test

import (
	"testing"
	"time"

	"github.com/d9705996/teamconnect/internal/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-bytes-long"

func TestIssueAndParseAccessToken(t *testing.T) {
	token, err := auth.IssueAccessToken(7, 3, "user@example.com", []string{auth.PermCreatePosts}, testSecret, 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ParseAccessToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, uint(3), claims.CompanyID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, []string{auth.PermCreatePosts}, claims.Permissions)
	assert.Equal(t, "7", claims.Subject)
}

func TestParseAccessToken_ExpiredToken(t *testing.T) {
	// Issue a token with a -1 minute TTL so it is already expired.
	token, err := auth.IssueAccessToken(1, 1, "user@example.com", nil, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = auth.ParseAccessToken(token, testSecret)
	require.Error(t, err)
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	token, err := auth.IssueAccessToken(1, 1, "user@example.com", nil, testSecret, 15*time.Minute)
	require.NoError(t, err)

	_, err = auth.ParseAccessToken(token, "wrong-secret")
	require.Error(t, err)
}

func TestParseAccessToken_Garbage(t *testing.T) {
	_, err := auth.ParseAccessToken("not.a.jwt", testSecret)
	require.Error(t, err)
}

func TestParseAccessToken_MissingCompany(t *testing.T) {
	token, err := auth.IssueAccessToken(1, 0, "user@example.com", nil, testSecret, 15*time.Minute)
	require.NoError(t, err)

	_, err = auth.ParseAccessToken(token, testSecret)
	require.Error(t, err)
}

func TestParseAccessToken_ForeignIssuer(t *testing.T) {
	claims := auth.Claims{
		UserID:    1,
		CompanyID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = auth.ParseAccessToken(token, testSecret)
	require.Error(t, err)
}
