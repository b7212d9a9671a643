package usecase

import (
	"context"
	"time"

	"ig-dashboard/domain/model"
	"ig-dashboard/domain/repository"

	"github.com/google/uuid"
)

// ISessionUseCase issues and revokes server-side sessions.
type ISessionUseCase interface {
	Establish(ctx context.Context, userID int64, instagramID string) (*model.Session, error)
	// Get returns nil, nil for unknown or expired ids.
	Get(ctx context.Context, id string) (*model.Session, error)
	Destroy(ctx context.Context, id string) error
}

type SessionUseCase struct {
	store repository.ISessionStore
	ttl   time.Duration
	now   func() time.Time
}

func NewSessionUseCase(store repository.ISessionStore, ttl time.Duration) ISessionUseCase {
	if ttl <= 0 {
		ttl = model.SessionTTL
	}
	return &SessionUseCase{store: store, ttl: ttl, now: time.Now}
}

func (u *SessionUseCase) Establish(ctx context.Context, userID int64, instagramID string) (*model.Session, error) {
	now := u.now().UTC()
	sess := &model.Session{
		ID:          uuid.NewString(),
		UserID:      userID,
		InstagramID: instagramID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(u.ttl),
	}
	if err := u.store.Save(ctx, sess, u.ttl); err != nil {
		return nil, err
	}
	return sess, nil
}

func (u *SessionUseCase) Get(ctx context.Context, id string) (*model.Session, error) {
	if id == "" {
		return nil, nil
	}
	sess, err := u.store.Get(ctx, id)
	if err != nil || sess == nil {
		return nil, err
	}
	if sess.Expired(u.now()) {
		return nil, nil
	}
	return sess, nil
}

func (u *SessionUseCase) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return u.store.Delete(ctx, id)
}
