package fireauth

import (
	"context"
)

// Entry-point operations: the unauthenticated surface that produces the
// first Session of a lineage from raw credentials.

type signInRequest struct {
	Email             string `json:"email,omitempty"`
	Password          string `json:"password,omitempty"`
	Token             string `json:"token,omitempty"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken      string `json:"idToken"`
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
	Registered   bool   `json:"registered"`
}

// sessionFromResponse turns a token-minting response into the first Session
// of a lineage. Responses without a localId field (custom token exchange)
// fall back to the subject claim inside the identity token.
func (c *Client) sessionFromResponse(operation, idToken, refreshToken, localID, expiresIn string) (*Session, error) {
	ttl, err := parseExpiresIn(operation, expiresIn)
	if err != nil {
		return nil, err
	}
	if localID == "" {
		localID = localIDFromToken(idToken)
	}
	return c.newSession(idToken, refreshToken, localID, ttl, c.now()), nil
}

// SignUpWithEmailPassword creates a new account and returns its first
// session.
func (c *Client) SignUpWithEmailPassword(ctx context.Context, email, password string) (*Session, error) {
	payload := signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}

	var response signInResponse
	if err := c.post(ctx, "signUp", c.accountsURL("signUp"), payload, &response); err != nil {
		return nil, err
	}
	return c.sessionFromResponse("signUp", response.IDToken, response.RefreshToken, response.LocalID, response.ExpiresIn)
}

// SignInWithEmailPassword authenticates an existing account.
func (c *Client) SignInWithEmailPassword(ctx context.Context, email, password string) (*Session, error) {
	payload := signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}

	var response signInResponse
	if err := c.post(ctx, "signInWithPassword", c.accountsURL("signInWithPassword"), payload, &response); err != nil {
		return nil, err
	}
	return c.sessionFromResponse("signInWithPassword", response.IDToken, response.RefreshToken, response.LocalID, response.ExpiresIn)
}

// SignInAnonymously creates a throwaway anonymous account.
func (c *Client) SignInAnonymously(ctx context.Context) (*Session, error) {
	payload := signInRequest{ReturnSecureToken: true}

	var response signInResponse
	if err := c.post(ctx, "signUp", c.accountsURL("signUp"), payload, &response); err != nil {
		return nil, err
	}
	return c.sessionFromResponse("signUp", response.IDToken, response.RefreshToken, response.LocalID, response.ExpiresIn)
}

// SignInWithCustomToken exchanges a custom token minted by a trusted
// backend for a session.
func (c *Client) SignInWithCustomToken(ctx context.Context, token string) (*Session, error) {
	payload := signInRequest{
		Token:             token,
		ReturnSecureToken: true,
	}

	var response signInResponse
	if err := c.post(ctx, "signInWithCustomToken", c.accountsURL("signInWithCustomToken"), payload, &response); err != nil {
		return nil, err
	}
	return c.sessionFromResponse("signInWithCustomToken", response.IDToken, response.RefreshToken, response.LocalID, response.ExpiresIn)
}

type signInWithIdpRequest struct {
	RequestURI          string `json:"requestUri"`
	PostBody            string `json:"postBody"`
	IDToken             string `json:"idToken,omitempty"`
	ReturnSecureToken   bool   `json:"returnSecureToken"`
	ReturnIdpCredential bool   `json:"returnIdpCredential"`
}

type signInWithIdpResponse struct {
	IDToken       string     `json:"idToken"`
	RefreshToken  string     `json:"refreshToken"`
	ExpiresIn     string     `json:"expiresIn"`
	LocalID       string     `json:"localId"`
	Email         string     `json:"email"`
	EmailVerified bool       `json:"emailVerified"`
	ProviderID    ProviderID `json:"providerId"`
	FederatedID   string     `json:"federatedId"`
	DisplayName   string     `json:"displayName"`
	PhotoURL      string     `json:"photoUrl"`
	NeedConfirm   bool       `json:"needConfirmation"`
}

// SignInWithOAuthCredential signs in with an assertion already obtained
// from an identity provider. requestURI is the URI the IdP redirected back
// to; building the assertion itself is the caller's concern.
func (c *Client) SignInWithOAuthCredential(ctx context.Context, requestURI string, credential OAuthCredential) (*Session, error) {
	body, err := credential.postBody()
	if err != nil {
		return nil, err
	}
	payload := signInWithIdpRequest{
		RequestURI:          requestURI,
		PostBody:            body,
		ReturnSecureToken:   true,
		ReturnIdpCredential: true,
	}

	var response signInWithIdpResponse
	if err := c.post(ctx, "signInWithIdp", c.accountsURL("signInWithIdp"), payload, &response); err != nil {
		return nil, err
	}
	return c.sessionFromResponse("signInWithIdp", response.IDToken, response.RefreshToken, response.LocalID, response.ExpiresIn)
}

// linkWithOAuthCredential is the authenticated variant used by the
// lifecycle core.
func (c *Client) linkWithOAuthCredential(ctx context.Context, idToken, requestURI string, credential OAuthCredential) (*signInWithIdpResponse, error) {
	body, err := credential.postBody()
	if err != nil {
		return nil, err
	}
	payload := signInWithIdpRequest{
		RequestURI:          requestURI,
		PostBody:            body,
		IDToken:             idToken,
		ReturnSecureToken:   true,
		ReturnIdpCredential: true,
	}

	var response signInWithIdpResponse
	if err := c.post(ctx, "signInWithIdp", c.accountsURL("signInWithIdp"), payload, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

type createAuthURIRequest struct {
	Identifier  string `json:"identifier"`
	ContinueURI string `json:"continueUri"`
}

type createAuthURIResponse struct {
	AllProviders  []ProviderID `json:"allProviders"`
	Registered    bool         `json:"registered"`
	SigninMethods []string     `json:"signinMethods"`
}

// FetchProvidersForEmail lists the identity providers already associated
// with an email address. continueURI is the URL the IdP would redirect back
// to; the provider requires a well-formed one even for a pure lookup.
func (c *Client) FetchProvidersForEmail(ctx context.Context, email, continueURI string) ([]ProviderID, error) {
	payload := createAuthURIRequest{
		Identifier:  email,
		ContinueURI: continueURI,
	}

	var response createAuthURIResponse
	if err := c.post(ctx, "createAuthUri", c.accountsURL("createAuthUri"), payload, &response); err != nil {
		return nil, err
	}
	return response.AllProviders, nil
}

type resetPasswordRequest struct {
	OOBCode     string `json:"oobCode"`
	NewPassword string `json:"newPassword,omitempty"`
}

type resetPasswordResponse struct {
	Email       string `json:"email"`
	RequestType string `json:"requestType"`
}

// SendPasswordResetEmail asks the provider to email a password reset link.
// locale, when non-empty, localizes the email.
func (c *Client) SendPasswordResetEmail(ctx context.Context, email, locale string) error {
	payload := sendOOBCodeRequest{
		RequestType: "PASSWORD_RESET",
		Email:       email,
	}
	return c.postWithHeaders(ctx, "sendOobCode", c.accountsURL("sendOobCode"), payload, nil,
		map[string]string{localeHeader: locale})
}

// VerifyPasswordResetCode checks a reset code without consuming it and
// returns the email it was issued for.
func (c *Client) VerifyPasswordResetCode(ctx context.Context, oobCode string) (string, error) {
	payload := resetPasswordRequest{OOBCode: oobCode}

	var response resetPasswordResponse
	if err := c.post(ctx, "resetPassword", c.accountsURL("resetPassword"), payload, &response); err != nil {
		return "", err
	}
	return response.Email, nil
}

// ConfirmPasswordReset consumes a reset code and sets the new password.
func (c *Client) ConfirmPasswordReset(ctx context.Context, oobCode, newPassword string) error {
	payload := resetPasswordRequest{
		OOBCode:     oobCode,
		NewPassword: newPassword,
	}
	return c.post(ctx, "resetPassword", c.accountsURL("resetPassword"), payload, nil)
}
