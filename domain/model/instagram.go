package model

import (
	"encoding/json"
	"time"
)

// Profile mirrors the Instagram business profile fields we display.
type Profile struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Name              string    `json:"name,omitempty"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	Biography         string    `json:"biography,omitempty"`
	Website           string    `json:"website,omitempty"`
	IsBusiness        *bool     `json:"is_business,omitempty"`
	MediaCount        *int      `json:"media_count,omitempty"`
	FollowersCount    *int      `json:"followers_count,omitempty"`
	FollowingCount    *int      `json:"following_count,omitempty"`
	UpdatedAt         time.Time `json:"-"`
}

// Media is one cached Instagram media item. Comments holds the provider's
// comment listing verbatim ({"data":[...], "paging":{...}}).
type Media struct {
	ID            string          `json:"id"`
	MediaType     string          `json:"media_type"`
	MediaURL      string          `json:"media_url"`
	Permalink     string          `json:"permalink"`
	ThumbnailURL  string          `json:"thumbnail_url,omitempty"`
	Caption       string          `json:"caption,omitempty"`
	Timestamp     string          `json:"timestamp"`
	LikeCount     *int            `json:"like_count,omitempty"`
	CommentsCount *int            `json:"comments_count,omitempty"`
	Comments      json.RawMessage `json:"comments,omitempty"`
}
