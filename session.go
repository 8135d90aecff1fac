package fireauth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Session is the credential state of one authenticated user: an identity
// token, the absolute time it expires, and the refresh token that can mint
// a successor. Sessions are immutable values; every authenticated operation
// returns a new *Session which supersedes the one it was called on. Always
// keep and use the newest session in a lineage, since the identity token inside
// an older one may already have been left to expire.
//
// Sessions are created by the sign-in and sign-up operations on Client, or
// internally by a refresh. Two sessions of the same lineage always agree on
// LocalID.
type Session struct {
	client       *Client
	idToken      string
	refreshToken string
	expiresAt    time.Time
	localID      string
}

// IDToken returns the bearer identity token. It may already be expired;
// check Expired or go through the session's operation methods, which refresh
// as needed.
func (s *Session) IDToken() string { return s.idToken }

// RefreshToken returns the refresh token of this lineage.
func (s *Session) RefreshToken() string { return s.refreshToken }

// LocalID returns the stable identifier of the authenticated account. It is
// unchanged across refreshes.
func (s *Session) LocalID() string { return s.localID }

// ExpiresAt returns the absolute expiry of the identity token, computed
// from the server-declared TTL when the token was minted.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Expired reports whether the identity token is no longer valid at the
// given instant. The boundary counts as expired: Expired(ExpiresAt()) is
// true.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.expiresAt)
}

// TokenSource adapts the session for oauth2-aware HTTP stacks. The source
// is a snapshot of this session's token; it does not refresh. Obtain a new
// session (and a new source) when the token expires.
func (s *Session) TokenSource() oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: s.idToken,
		TokenType:   "Bearer",
		Expiry:      s.expiresAt,
	})
}

// Claims decodes the identity token's JWT payload without verifying its
// signature, for local inspection of claims such as email or auth_time.
// Expiry decisions never come from here; ExpiresAt carries the
// server-declared TTL.
func (s *Session) Claims() (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.idToken, claims); err != nil {
		return nil, fmt.Errorf("failed to decode identity token: %w", err)
	}
	return claims, nil
}

// newSession builds a session from freshly minted tokens. expiresAt derives
// from the server-declared TTL at mint time, never recomputed later.
func (c *Client) newSession(idToken, refreshToken, localID string, ttl time.Duration, now time.Time) *Session {
	return &Session{
		client:       c,
		idToken:      idToken,
		refreshToken: refreshToken,
		expiresAt:    now.Add(ttl),
		localID:      localID,
	}
}

// localIDFromToken recovers the subject identifier from the identity token
// for the sign-in responses that do not carry a localId field (custom token
// exchange).
func localIDFromToken(idToken string) string {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return ""
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return userID
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}
