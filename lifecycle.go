package fireauth

import (
	"context"
	"time"
)

// This file is the session lifecycle core. Every authenticated operation
// funnels through WithSession or WithSessionTerminal, which guarantee the
// identity token handed to the raw operation is valid at call time and that
// the freshest credential state flows back to the caller.

// ensureFresh returns a session whose identity token is valid at now,
// performing at most one refresh round trip. On refresh failure it returns
// a *RefreshError and the caller's session stays the only valid reference:
// it was not invalidated, merely left expired, so a later call will refresh
// again.
func ensureFresh(ctx context.Context, s *Session, now time.Time) (*Session, error) {
	if !s.Expired(now) {
		return s, nil
	}

	s.client.logger.Debugf("identity token expired at %s, refreshing", s.expiresAt.Format(time.RFC3339))

	response, err := s.client.exchangeRefreshToken(ctx, s.refreshToken)
	if err != nil {
		return nil, &RefreshError{Err: err}
	}

	ttl, err := parseExpiresIn("token", response.ExpiresIn)
	if err != nil {
		return nil, &RefreshError{Err: err}
	}

	// The endpoint may rotate the refresh token; whatever it names is the
	// one valid for the next exchange.
	refreshToken := response.RefreshToken
	if refreshToken == "" {
		refreshToken = s.refreshToken
	}

	localID := s.localID
	if localID == "" {
		localID = response.UserID
	}

	return s.client.newSession(response.IDToken, refreshToken, localID, ttl, now), nil
}

// WithSession invokes op with an identity token valid at now, refreshing it
// first if needed, and returns op's result together with the session that
// was used. That session supersedes the input and must be retained by the
// caller.
//
// At most one refresh happens per invocation. A credential-related
// rejection from op itself is returned as-is, never answered with a second
// refresh, so a persistently invalid refresh token cannot cause a refresh
// loop. When the refresh step fails the returned session is nil and op was
// never invoked; keep using the input session. When op fails the returned
// session is the one whose token was used; it is valid as issued, so the
// failure is about the operation, not the credential.
func WithSession[T any](ctx context.Context, s *Session, now time.Time, op func(ctx context.Context, idToken string) (T, error)) (T, *Session, error) {
	var zero T
	fresh, err := ensureFresh(ctx, s, now)
	if err != nil {
		return zero, nil, err
	}
	result, err := op(ctx, fresh.idToken)
	if err != nil {
		return zero, fresh, err
	}
	return result, fresh, nil
}

// WithSessionTerminal is the WithSession variant for operations that end
// the session lineage (account deletion). No successor session exists after
// a successful call.
func WithSessionTerminal(ctx context.Context, s *Session, now time.Time, op func(ctx context.Context, idToken string) error) error {
	fresh, err := ensureFresh(ctx, s, now)
	if err != nil {
		return err
	}
	return op(ctx, fresh.idToken)
}

// withFreshToken is the common shape of the operations that return no
// payload of their own: run op, hand back the session that was used.
func (s *Session) withFreshToken(ctx context.Context, op func(ctx context.Context, idToken string) error) (*Session, error) {
	_, used, err := WithSession(ctx, s, s.client.now(), func(ctx context.Context, idToken string) (struct{}, error) {
		return struct{}{}, op(ctx, idToken)
	})
	return used, err
}

// GetUserData fetches the account's user data. The returned session
// supersedes the receiver.
func (s *Session) GetUserData(ctx context.Context) (*UserData, *Session, error) {
	return WithSession(ctx, s, s.client.now(), func(ctx context.Context, idToken string) (*UserData, error) {
		return s.client.lookupAccount(ctx, idToken)
	})
}

// UpdateProfile updates display name and photo URL, or deletes them via
// params.Delete. The returned session supersedes the receiver.
func (s *Session) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Session, error) {
	return s.withFreshToken(ctx, func(ctx context.Context, idToken string) error {
		return s.client.updateProfile(ctx, idToken, params)
	})
}

// ChangeEmail changes the account email. locale, when non-empty, localizes
// the revocation email sent to the previous address. The returned session
// supersedes the receiver.
func (s *Session) ChangeEmail(ctx context.Context, newEmail, locale string) (*Session, error) {
	return s.withFreshToken(ctx, func(ctx context.Context, idToken string) error {
		return s.client.changeEmail(ctx, idToken, newEmail, locale)
	})
}

// ChangePassword changes the account password. The returned session
// supersedes the receiver.
func (s *Session) ChangePassword(ctx context.Context, newPassword string) (*Session, error) {
	return s.withFreshToken(ctx, func(ctx context.Context, idToken string) error {
		return s.client.changePassword(ctx, idToken, newPassword)
	})
}

// SendEmailVerification asks the provider to email a verification link to
// the account's address. The returned session supersedes the receiver.
func (s *Session) SendEmailVerification(ctx context.Context, locale string) (*Session, error) {
	return s.withFreshToken(ctx, func(ctx context.Context, idToken string) error {
		return s.client.sendEmailVerification(ctx, idToken, locale)
	})
}

// UnlinkProviders detaches the given providers from the account. The
// returned session supersedes the receiver.
func (s *Session) UnlinkProviders(ctx context.Context, providers ...ProviderID) (*Session, error) {
	return s.withFreshToken(ctx, func(ctx context.Context, idToken string) error {
		return s.client.unlinkProviders(ctx, idToken, providers)
	})
}

// LinkWithEmailPassword attaches an email/password credential to the
// account. The link endpoints mint fresh tokens, so the returned session
// carries them rather than the ones used for the call.
func (s *Session) LinkWithEmailPassword(ctx context.Context, email, password string) (*Session, error) {
	response, used, err := WithSession(ctx, s, s.client.now(), func(ctx context.Context, idToken string) (*updateAccountResponse, error) {
		return s.client.linkWithEmailPassword(ctx, idToken, email, password)
	})
	if err != nil {
		return used, err
	}
	return s.successorFromTokens("update", used, response.IDToken, response.RefreshToken, response.ExpiresIn)
}

// LinkWithOAuthCredential attaches an OAuth identity to the account. The
// credential carries an assertion already obtained from the IdP; building
// that assertion is the caller's concern. Like the email/password link, the
// returned session carries the freshly minted tokens.
func (s *Session) LinkWithOAuthCredential(ctx context.Context, requestURI string, credential OAuthCredential) (*Session, error) {
	response, used, err := WithSession(ctx, s, s.client.now(), func(ctx context.Context, idToken string) (*signInWithIdpResponse, error) {
		return s.client.linkWithOAuthCredential(ctx, idToken, requestURI, credential)
	})
	if err != nil {
		return used, err
	}
	return s.successorFromTokens("signInWithIdp", used, response.IDToken, response.RefreshToken, response.ExpiresIn)
}

// Refresh exchanges the refresh token unconditionally and returns the
// successor session. Normally unnecessary: authenticated operations refresh
// on their own.
func (s *Session) Refresh(ctx context.Context) (*Session, error) {
	expired := *s
	expired.expiresAt = time.Time{}
	return ensureFresh(ctx, &expired, s.client.now())
}

// DeleteAccount deletes the account. This ends the session lineage: there
// is no successor session, and the refresh token is invalidated remotely.
func (s *Session) DeleteAccount(ctx context.Context) error {
	return WithSessionTerminal(ctx, s, s.client.now(), func(ctx context.Context, idToken string) error {
		return s.client.deleteAccount(ctx, idToken)
	})
}

// successorFromTokens builds the post-link session from endpoint-minted
// tokens, preserving the lineage's local ID.
func (s *Session) successorFromTokens(operation string, used *Session, idToken, refreshToken, expiresIn string) (*Session, error) {
	ttl, err := parseExpiresIn(operation, expiresIn)
	if err != nil {
		return used, err
	}
	if refreshToken == "" {
		refreshToken = used.refreshToken
	}
	return s.client.newSession(idToken, refreshToken, used.localID, ttl, s.client.now()), nil
}
