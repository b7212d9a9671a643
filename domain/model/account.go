package model

import "time"

// AccountUsernamePrefix is prepended to the Instagram id to derive the
// placeholder username of accounts created through OAuth linking.
const AccountUsernamePrefix = "instagram_"

// TokenLifetime is the fixed validity window stored with every linked token.
const TokenLifetime = 60 * 24 * time.Hour

// Account is the local identity record. Password is empty for accounts
// created through OAuth linking.
type Account struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Password     string     `json:"-"`
	InstagramID  *string    `json:"instagram_id,omitempty"`
	AccessToken  string     `json:"-"`
	RefreshToken string     `json:"-"`
	TokenExpiry  *time.Time `json:"token_expiry,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// HasToken reports whether the account can call the Graph API.
func (a *Account) HasToken() bool {
	return a != nil && a.AccessToken != ""
}

// UsernameFor derives the placeholder username for an Instagram id.
func UsernameFor(instagramID string) string {
	return AccountUsernamePrefix + instagramID
}
