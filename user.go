package fireauth

// UserData is the account record returned by the lookup endpoint.
// Timestamps arrive as the provider sends them: milliseconds-since-epoch
// strings for createdAt/lastLoginAt/passwordUpdatedAt and an RFC 3339
// string for lastRefreshAt.
type UserData struct {
	LocalID           string             `json:"localId"`
	Email             string             `json:"email"`
	EmailVerified     bool               `json:"emailVerified"`
	DisplayName       string             `json:"displayName"`
	PhotoURL          string             `json:"photoUrl"`
	ProviderUserInfo  []ProviderUserInfo `json:"providerUserInfo"`
	PasswordUpdatedAt float64            `json:"passwordUpdatedAt"`
	ValidSince        string             `json:"validSince"`
	Disabled          bool               `json:"disabled"`
	LastLoginAt       string             `json:"lastLoginAt"`
	CreatedAt         string             `json:"createdAt"`
	LastRefreshAt     string             `json:"lastRefreshAt"`
	CustomAuth        bool               `json:"customAuth"`
}

// ProviderUserInfo is one linked identity of an account.
type ProviderUserInfo struct {
	ProviderID  ProviderID `json:"providerId"`
	FederatedID string     `json:"federatedId"`
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName"`
	PhotoURL    string     `json:"photoUrl"`
	RawID       string     `json:"rawId"`
	ScreenName  string     `json:"screenName"`
}
