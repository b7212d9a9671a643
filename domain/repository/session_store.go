package repository

import (
	"context"
	"time"

	"ig-dashboard/domain/model"
)

// ISessionStore keeps TTL-bounded server-side sessions.
type ISessionStore interface {
	Save(ctx context.Context, session *model.Session, ttl time.Duration) error
	// Get returns nil, nil for unknown or expired ids.
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

// IStateStore holds one-time OAuth state values.
type IStateStore interface {
	PutState(ctx context.Context, state string, ttl time.Duration) error
	// ConsumeState reports whether state was known and removes it.
	ConsumeState(ctx context.Context, state string) (bool, error)
}
