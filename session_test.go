package fireauth

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionExpired(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())
	expiry := testNow.Add(time.Hour)
	session := testSession(client, "tok1", "r1", "user-1", expiry)

	tests := []struct {
		name    string
		now     time.Time
		expired bool
	}{
		{"well before expiry", expiry.Add(-time.Hour), false},
		{"one nanosecond before", expiry.Add(-time.Nanosecond), false},
		{"exactly at expiry", expiry, true},
		{"one nanosecond after", expiry.Add(time.Nanosecond), true},
		{"long after expiry", expiry.Add(24 * time.Hour), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expired, session.Expired(tc.now))
		})
	}
}

func TestSessionAccessors(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())
	expiry := testNow.Add(30 * time.Minute)
	session := testSession(client, "tok1", "r1", "user-1", expiry)

	assert.Equal(t, "tok1", session.IDToken())
	assert.Equal(t, "r1", session.RefreshToken())
	assert.Equal(t, "user-1", session.LocalID())
	assert.Equal(t, expiry, session.ExpiresAt())
}

func TestSessionTokenSource(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())
	expiry := testNow.Add(time.Hour)
	session := testSession(client, "tok1", "r1", "user-1", expiry)

	token, err := session.TokenSource().Token()
	require.NoError(t, err)
	assert.Equal(t, "tok1", token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, expiry, token.Expiry)
}

func TestSessionClaims(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())
	idToken := signedTestToken(t, jwt.MapClaims{
		"user_id":   "user-1",
		"email":     "u@example.com",
		"auth_time": float64(1717243200),
	})
	session := testSession(client, idToken, "r1", "user-1", testNow.Add(time.Hour))

	claims, err := session.Claims()
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "u@example.com", claims["email"])

	garbage := testSession(client, "not-a-jwt", "r1", "user-1", testNow.Add(time.Hour))
	_, err = garbage.Claims()
	assert.Error(t, err)
}

func TestLocalIDFromToken(t *testing.T) {
	t.Run("user_id claim preferred", func(t *testing.T) {
		token := signedTestToken(t, jwt.MapClaims{"user_id": "user-1", "sub": "subject-1"})
		assert.Equal(t, "user-1", localIDFromToken(token))
	})

	t.Run("sub fallback", func(t *testing.T) {
		token := signedTestToken(t, jwt.MapClaims{"sub": "subject-1"})
		assert.Equal(t, "subject-1", localIDFromToken(token))
	})

	t.Run("undecodable token", func(t *testing.T) {
		assert.Equal(t, "", localIDFromToken("garbage"))
	})
}

func TestNewSessionDerivesExpiryFromTTL(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())
	session := client.newSession("tok1", "r1", "user-1", 3600*time.Second, testNow)
	assert.Equal(t, testNow.Add(time.Hour), session.ExpiresAt())
}

func TestParseExpiresIn(t *testing.T) {
	ttl, err := parseExpiresIn("token", "3600")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)

	_, err = parseExpiresIn("token", "soon")
	require.Error(t, err)
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}
