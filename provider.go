package fireauth

import (
	"fmt"
	"net/url"

	"golang.org/x/oauth2"
)

// ProviderID identifies an identity provider in the wire format the API
// expects.
type ProviderID string

const (
	ProviderPassword  ProviderID = "password"
	ProviderPhone     ProviderID = "phone"
	ProviderAnonymous ProviderID = "anonymous"
	ProviderCustom    ProviderID = "custom"
	ProviderGoogle    ProviderID = "google.com"
	ProviderFacebook  ProviderID = "facebook.com"
	ProviderApple     ProviderID = "apple.com"
	ProviderGitHub    ProviderID = "github.com"
	ProviderTwitter   ProviderID = "twitter.com"
	ProviderMicrosoft ProviderID = "microsoft.com"
	ProviderYahoo     ProviderID = "yahoo.com"
)

// OAuthCredential is an assertion already obtained from an identity
// provider, ready to be exchanged at the signInWithIdp endpoint. Depending
// on the provider it is an OpenID Connect ID token, an OAuth access token,
// or both.
type OAuthCredential struct {
	Provider    ProviderID
	IDToken     string
	AccessToken string
}

// OAuthCredentialFromToken builds a credential from an oauth2 token as
// returned by the provider's token endpoint. The ID token, when the
// provider issued one, rides in the "id_token" extra field.
func OAuthCredentialFromToken(provider ProviderID, token *oauth2.Token) OAuthCredential {
	credential := OAuthCredential{
		Provider:    provider,
		AccessToken: token.AccessToken,
	}
	if idToken, ok := token.Extra("id_token").(string); ok {
		credential.IDToken = idToken
	}
	return credential
}

// postBody encodes the credential in the form-urlencoded shape the
// signInWithIdp endpoint expects inside its JSON payload.
func (c OAuthCredential) postBody() (string, error) {
	if c.Provider == "" {
		return "", fmt.Errorf("oauth credential: provider is required")
	}
	if c.IDToken == "" && c.AccessToken == "" {
		return "", fmt.Errorf("oauth credential: an id_token or access_token is required")
	}

	values := url.Values{}
	values.Set("providerId", string(c.Provider))
	if c.IDToken != "" {
		values.Set("id_token", c.IDToken)
	}
	if c.AccessToken != "" {
		values.Set("access_token", c.AccessToken)
	}
	return values.Encode(), nil
}
