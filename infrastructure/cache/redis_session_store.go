package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ig-dashboard/domain/model"
	"ig-dashboard/domain/repository"
	"ig-dashboard/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	stateKeyPrefix   = "oauth_state:"
)

// RedisSessionStore keeps sessions and OAuth state values in Redis, relying on
// key expiry for the TTL.
type RedisSessionStore struct {
	client *redis.Client
}

var (
	_ repository.ISessionStore = (*RedisSessionStore)(nil)
	_ repository.IStateStore   = (*RedisSessionStore)(nil)
)

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, session *model.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID, data, ttl).Err(); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":      err,
			"session_id": session.ID,
		}).Error("Failed to set session in redis")
		return err
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":      err,
			"session_id": id,
		}).Warn("Discarding undecodable session")
		return nil, nil
	}
	if session.Expired(time.Now()) {
		return nil, nil
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}

func (s *RedisSessionStore) PutState(ctx context.Context, state string, ttl time.Duration) error {
	return s.client.Set(ctx, stateKeyPrefix+state, "1", ttl).Err()
}

// ConsumeState uses GETDEL so a state value can be redeemed only once.
func (s *RedisSessionStore) ConsumeState(ctx context.Context, state string) (bool, error) {
	err := s.client.GetDel(ctx, stateKeyPrefix+state).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
