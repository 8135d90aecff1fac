package fireauth

import (
	"context"
	"fmt"
)

// Raw operations against the authenticated accounts endpoints. Each one is
// a single round trip taking the identity token it was handed; token
// freshness is the lifecycle core's concern, not theirs.

// DeleteAttribute names a profile attribute removable through
// UpdateProfile.
type DeleteAttribute string

const (
	DeleteDisplayName DeleteAttribute = "DISPLAY_NAME"
	DeletePhotoURL    DeleteAttribute = "PHOTO_URL"
)

// UpdateProfileParams carries the profile fields to set and the attributes
// to delete. Empty fields are left untouched.
type UpdateProfileParams struct {
	DisplayName string
	PhotoURL    string
	Delete      []DeleteAttribute
}

type lookupAccountRequest struct {
	IDToken string `json:"idToken"`
}

type lookupAccountResponse struct {
	Users []UserData `json:"users"`
}

func (c *Client) lookupAccount(ctx context.Context, idToken string) (*UserData, error) {
	payload := lookupAccountRequest{IDToken: idToken}

	var response lookupAccountResponse
	if err := c.post(ctx, "lookup", c.accountsURL("lookup"), payload, &response); err != nil {
		return nil, err
	}
	if len(response.Users) == 0 {
		return nil, &DecodeError{
			Operation: "lookup",
			Err:       fmt.Errorf("response contains no user records"),
		}
	}
	return &response.Users[0], nil
}

type updateAccountRequest struct {
	IDToken           string            `json:"idToken"`
	Email             string            `json:"email,omitempty"`
	Password          string            `json:"password,omitempty"`
	DisplayName       string            `json:"displayName,omitempty"`
	PhotoURL          string            `json:"photoUrl,omitempty"`
	DeleteAttribute   []DeleteAttribute `json:"deleteAttribute,omitempty"`
	DeleteProvider    []ProviderID      `json:"deleteProvider,omitempty"`
	ReturnSecureToken bool              `json:"returnSecureToken"`
}

// updateAccountResponse covers every accounts:update reply. The token
// fields are only present when returnSecureToken was set.
type updateAccountResponse struct {
	LocalID          string             `json:"localId"`
	Email            string             `json:"email"`
	DisplayName      string             `json:"displayName"`
	PhotoURL         string             `json:"photoUrl"`
	ProviderUserInfo []ProviderUserInfo `json:"providerUserInfo"`
	IDToken          string             `json:"idToken"`
	RefreshToken     string             `json:"refreshToken"`
	ExpiresIn        string             `json:"expiresIn"`
}

func (c *Client) updateProfile(ctx context.Context, idToken string, params UpdateProfileParams) error {
	payload := updateAccountRequest{
		IDToken:         idToken,
		DisplayName:     params.DisplayName,
		PhotoURL:        params.PhotoURL,
		DeleteAttribute: params.Delete,
	}
	return c.post(ctx, "update", c.accountsURL("update"), payload, nil)
}

func (c *Client) changeEmail(ctx context.Context, idToken, newEmail, locale string) error {
	payload := updateAccountRequest{
		IDToken: idToken,
		Email:   newEmail,
	}
	return c.postWithHeaders(ctx, "update", c.accountsURL("update"), payload, nil,
		map[string]string{localeHeader: locale})
}

func (c *Client) changePassword(ctx context.Context, idToken, newPassword string) error {
	payload := updateAccountRequest{
		IDToken:  idToken,
		Password: newPassword,
	}
	return c.post(ctx, "update", c.accountsURL("update"), payload, nil)
}

func (c *Client) unlinkProviders(ctx context.Context, idToken string, providers []ProviderID) error {
	payload := updateAccountRequest{
		IDToken:        idToken,
		DeleteProvider: providers,
	}
	return c.post(ctx, "update", c.accountsURL("update"), payload, nil)
}

// linkWithEmailPassword attaches an email/password credential. The endpoint
// mints fresh tokens, hence returnSecureToken.
func (c *Client) linkWithEmailPassword(ctx context.Context, idToken, email, password string) (*updateAccountResponse, error) {
	payload := updateAccountRequest{
		IDToken:           idToken,
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}

	var response updateAccountResponse
	if err := c.post(ctx, "update", c.accountsURL("update"), payload, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

type sendOOBCodeRequest struct {
	RequestType string `json:"requestType"`
	IDToken     string `json:"idToken,omitempty"`
	Email       string `json:"email,omitempty"`
}

func (c *Client) sendEmailVerification(ctx context.Context, idToken, locale string) error {
	payload := sendOOBCodeRequest{
		RequestType: "VERIFY_EMAIL",
		IDToken:     idToken,
	}
	return c.postWithHeaders(ctx, "sendOobCode", c.accountsURL("sendOobCode"), payload, nil,
		map[string]string{localeHeader: locale})
}

type deleteAccountRequest struct {
	IDToken string `json:"idToken"`
}

func (c *Client) deleteAccount(ctx context.Context, idToken string) error {
	payload := deleteAccountRequest{IDToken: idToken}
	return c.post(ctx, "delete", c.accountsURL("delete"), payload, nil)
}
