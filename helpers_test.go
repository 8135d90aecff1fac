package fireauth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// testNow is the frozen clock used by newTestClient.
var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestClient returns a client pointed at the given fake provider, with a
// generous rate limit and a clock frozen at testNow.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := CreateConfig()
	config.APIKey = "test-api-key"
	config.RateLimit = 1000
	config.RateBurst = 1000
	config.IdentityToolkitURL = server.URL
	config.SecureTokenURL = server.URL
	config.Logger = NewNoOpLogger()

	client, err := New(config)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	client.now = func() time.Time { return testNow }
	return client
}

// testSession builds a session on the given client without a network round
// trip.
func testSession(c *Client, idToken, refreshToken, localID string, expiresAt time.Time) *Session {
	return &Session{
		client:       c,
		idToken:      idToken,
		refreshToken: refreshToken,
		expiresAt:    expiresAt,
		localID:      localID,
	}
}

func decodeRequest(t *testing.T, r *http.Request, into any) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Fatalf("failed to encode response body: %v", err)
	}
}

// writeAPIError writes the provider's standard error envelope.
func writeAPIError(t *testing.T, w http.ResponseWriter, status int, message string) {
	t.Helper()
	writeJSON(t, w, status, map[string]any{
		"error": map[string]any{
			"code":    status,
			"message": message,
		},
	})
}

// refreshGrant is the canonical successful refresh reply.
func refreshGrant(idToken, refreshToken, expiresIn, userID string) map[string]any {
	return map[string]any{
		"access_token":  idToken,
		"expires_in":    expiresIn,
		"token_type":    "Bearer",
		"refresh_token": refreshToken,
		"id_token":      idToken,
		"user_id":       userID,
		"project_id":    "test-project",
	}
}

// signedTestToken mints a real JWT so claim decoding has something to chew
// on. The signature is irrelevant; the client never verifies it.
func signedTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}
