package repository

import (
	"context"
	"encoding/json"

	"ig-dashboard/domain/model"

	"golang.org/x/oauth2"
)

// Page is a Facebook page the user manages.
type Page struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token,omitempty"`
}

// IGraph is the subset of the Facebook Graph API the dashboard uses.
type IGraph interface {
	AuthCodeURL(state string) (string, error)
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	ListPages(ctx context.Context, accessToken string) ([]Page, error)
	GetUserInfo(ctx context.Context, accessToken string) (map[string]interface{}, error)
	// GetPageBusinessAccount returns "" when the page has no linked business account.
	GetPageBusinessAccount(ctx context.Context, accessToken, pageID string) (string, error)
	GetProfile(ctx context.Context, accessToken, instagramID string) (*model.Profile, error)
	ListMedia(ctx context.Context, accessToken, instagramID string) ([]model.Media, error)
	ListComments(ctx context.Context, accessToken, mediaID string) (json.RawMessage, error)
	PostComment(ctx context.Context, accessToken, mediaID, message string) (json.RawMessage, error)
	ReplyToComment(ctx context.Context, accessToken, commentID, message string) (json.RawMessage, error)
	LikeMedia(ctx context.Context, accessToken, mediaID string) (json.RawMessage, error)
	UnlikeMedia(ctx context.Context, accessToken, mediaID string) (json.RawMessage, error)
}
