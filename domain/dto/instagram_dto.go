package dto

import (
	"encoding/json"
	"time"

	"ig-dashboard/domain/model"
)

// CommentRequest represents a new top-level comment on a media item
type CommentRequest struct {
	MediaID string `json:"media_id" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ReplyRequest represents a reply to an existing comment
type ReplyRequest struct {
	CommentID string `json:"comment_id" binding:"required,notblank"`
	Message   string `json:"message" binding:"required,notblank"`
}

// LikeRequest is shared by like and unlike
type LikeRequest struct {
	MediaID string `json:"media_id" binding:"required"`
}

// ActionResult is returned by every mutation. APIUnsupported marks a soft
// success: the provider rejected the call as unsupported and nothing changed upstream.
type ActionResult struct {
	Success        bool        `json:"success"`
	APIUnsupported bool        `json:"apiUnsupported,omitempty"`
	Message        string      `json:"message,omitempty"`
	Data           interface{} `json:"data,omitempty"`
}

// UnsupportedActionData is the Data payload of a soft success.
type UnsupportedActionData struct {
	ID      string `json:"id"`
	Message string `json:"message,omitempty"`
}

// AuthStatus answers GET /api/auth/status. UserID and InstagramID are null
// for anonymous callers.
type AuthStatus struct {
	Authenticated bool    `json:"authenticated"`
	UserID        *int64  `json:"userId"`
	InstagramID   *string `json:"instagramId"`
}

// AuthURLResponse answers GET /api/auth/instagram
type AuthURLResponse struct {
	AuthURL string `json:"authUrl"`
}

// UserDetails answers GET /api/user
type UserDetails struct {
	ID          int64          `json:"id"`
	Username    string         `json:"username"`
	InstagramID *string        `json:"instagramId"`
	Profile     *model.Profile `json:"profile"`
	MediaCount  int            `json:"mediaCount"`
	TokenExpiry *time.Time     `json:"tokenExpiry"`
}

// ErrorResponse is the generic error body. Field is set for validation failures.
type ErrorResponse struct {
	Message string          `json:"message"`
	Field   string          `json:"field,omitempty"`
	Error   string          `json:"error,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`
}

// LinkErrorResponse is returned when the OAuth callback cannot complete.
type LinkErrorResponse struct {
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
	Error      string      `json:"error"`
}
