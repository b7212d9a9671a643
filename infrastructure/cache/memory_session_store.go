package cache

import (
	"context"
	"time"

	"ig-dashboard/domain/model"
	"ig-dashboard/domain/repository"
	"ig-dashboard/infrastructure/logger"

	"github.com/jellydator/ttlcache/v3"
)

// MemorySessionStore is the single-process fallback used when Redis is not
// configured or unreachable. Sessions are lost on restart.
type MemorySessionStore struct {
	sessions *ttlcache.Cache[string, model.Session]
	states   *ttlcache.Cache[string, struct{}]
}

var (
	_ repository.ISessionStore = (*MemorySessionStore)(nil)
	_ repository.IStateStore   = (*MemorySessionStore)(nil)
)

func NewMemorySessionStore() *MemorySessionStore {
	// reads must not extend a session past its fixed expiry
	return &MemorySessionStore{
		sessions: ttlcache.New[string, model.Session](ttlcache.WithDisableTouchOnHit[string, model.Session]()),
		states:   ttlcache.New[string, struct{}](ttlcache.WithDisableTouchOnHit[string, struct{}]()),
	}
}

func (s *MemorySessionStore) Save(_ context.Context, session *model.Session, ttl time.Duration) error {
	s.sessions.Set(session.ID, *session, ttl)
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*model.Session, error) {
	item := s.sessions.Get(id)
	if item == nil {
		return nil, nil
	}
	sess := item.Value()
	return &sess, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.sessions.Delete(id)
	return nil
}

func (s *MemorySessionStore) PutState(_ context.Context, state string, ttl time.Duration) error {
	s.states.Set(state, struct{}{}, ttl)
	return nil
}

// ConsumeState reports whether state was issued and unexpired, removing it either way.
func (s *MemorySessionStore) ConsumeState(_ context.Context, state string) (bool, error) {
	_, ok := s.states.GetAndDelete(state)
	return ok, nil
}

// Len returns the number of live sessions and pending state values.
func (s *MemorySessionStore) Len() int {
	return s.sessions.Len() + s.states.Len()
}

// Run evicts expired entries in the background until ctx is done.
func (s *MemorySessionStore) Run(ctx context.Context) {
	go s.sessions.Start()
	go s.states.Start()
	logger.GetLogger().Debug("In-memory session cleanup started")

	<-ctx.Done()
	s.sessions.Stop()
	s.states.Stop()
	logger.GetLogger().WithField("remaining", s.Len()).Debug("In-memory session cleanup stopped")
}
