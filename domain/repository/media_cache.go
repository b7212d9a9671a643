package repository

import (
	"context"

	"ig-dashboard/domain/model"
)

// IMediaCache is the per-account media cache. Entries stay valid until
// DeleteByInstagramID clears them.
type IMediaCache interface {
	// List returns cached items newest first; an empty slice means a miss.
	List(ctx context.Context, instagramID string) ([]model.Media, error)
	// UpsertAll writes the batch keyed by media id.
	UpsertAll(ctx context.Context, instagramID string, userID int64, items []model.Media) error
	DeleteByInstagramID(ctx context.Context, instagramID string) (int64, error)
}
