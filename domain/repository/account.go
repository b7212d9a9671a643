package repository

import (
	"context"
	"time"

	"ig-dashboard/domain/model"
)

// IAccount persists local accounts and their Instagram tokens.
// Lookups return nil, nil when no row matches.
type IAccount interface {
	GetByID(ctx context.Context, id int64) (*model.Account, error)
	// UpsertInstagramAccount finds the account linked to instagramID or creates
	// it, in a single statement. Existing accounts get their tokens and expiry
	// overwritten; new ones get the derived placeholder username.
	UpsertInstagramAccount(ctx context.Context, instagramID, accessToken, refreshToken string, expiry time.Time) (*model.Account, error)
}
