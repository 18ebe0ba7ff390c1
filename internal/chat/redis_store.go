package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/edupulse/riskcore/internal/domain"
)

// defaultSessionTTL bounds how long an idle session snapshot survives in
// the cache before the dashboard stops seeing it.
const defaultSessionTTL = 24 * time.Hour

// RedisStore mirrors session snapshots into Redis under session:{id} so
// counselor dashboards can watch live conversations without touching the
// core's in-memory registry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a session store. A zero ttl uses the default.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Save writes one session snapshot, refreshing its TTL.
func (s *RedisStore) Save(ctx context.Context, state *domain.ConversationState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", state.SessionID, err)
	}
	if err := s.client.Set(ctx, sessionKey(state.SessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", state.SessionID, err)
	}
	return nil
}

// Load reads one session snapshot. A missing session returns redis.Nil
// wrapped with context.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (*domain.ConversationState, error) {
	payload, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	var state domain.ConversationState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return &state, nil
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
