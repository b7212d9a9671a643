package repository

import (
	"context"

	"ig-dashboard/domain/model"
)

// IProfile stores the denormalized Instagram profile snapshot.
type IProfile interface {
	Upsert(ctx context.Context, profile *model.Profile) error
	// Get returns nil, nil when no snapshot exists.
	Get(ctx context.Context, instagramID string) (*model.Profile, error)
}
