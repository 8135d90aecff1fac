package fireauth

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// refreshRequest is the body of the secure token endpoint. The endpoint
// speaks snake_case JSON, unlike the identity toolkit operations.
type refreshRequest struct {
	GrantType    string `json:"grant_type"`
	RefreshToken string `json:"refresh_token"`
}

// refreshResponse is the secure token endpoint's reply. expires_in is a
// decimal string of seconds.
type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    string `json:"expires_in"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	UserID       string `json:"user_id"`
	ProjectID    string `json:"project_id"`
}

// exchangeRefreshToken trades a refresh token for a fresh identity token.
// One round trip, no retry.
func (c *Client) exchangeRefreshToken(ctx context.Context, refreshToken string) (*refreshResponse, error) {
	payload := refreshRequest{
		GrantType:    "refresh_token",
		RefreshToken: refreshToken,
	}

	var response refreshResponse
	if err := c.post(ctx, "token", c.tokenURL(), payload, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// parseExpiresIn converts the wire TTL (decimal-string seconds) into a
// duration.
func parseExpiresIn(operation, expiresIn string) (time.Duration, error) {
	seconds, err := strconv.ParseInt(expiresIn, 10, 64)
	if err != nil {
		return 0, &DecodeError{
			Operation: operation,
			Err:       fmt.Errorf("invalid expiresIn %q: %w", expiresIn, err),
		}
	}
	return time.Duration(seconds) * time.Second, nil
}
