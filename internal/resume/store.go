// Package resume stores per-user playback resume state in Redis.
//
// Resume state is ephemeral and high-churn, so it lives outside the
// relational store. Keys follow the {namespace}:{entity}:{id}:{field}
// convention, e.g. "ep:user:123:resume".
package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/echoplay/server/internal/domain"
)

// ErrNoState is returned when a user has no stored resume position.
var ErrNoState = errors.New("no resume state")

const keyNamespace = "ep"

// DefaultTTL is how long a resume position survives without updates.
const DefaultTTL = 30 * 24 * time.Hour

// Key returns the Redis key for a user's resume state.
func Key(userID string) string {
	return fmt.Sprintf("%s:user:%s:resume", keyNamespace, userID)
}

// Store persists resume state in Redis.
type Store struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewStore creates a resume store. A zero ttl means DefaultTTL.
func NewStore(client redis.UniversalClient, ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

// Set records the user's current playback position.
func (s *Store) Set(ctx context.Context, userID string, state *domain.ResumeState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal resume state: %w", err)
	}
	return s.client.Set(ctx, Key(userID), data, s.ttl).Err()
}

// Get returns the user's stored playback position.
func (s *Store) Get(ctx context.Context, userID string) (*domain.ResumeState, error) {
	data, err := s.client.Get(ctx, Key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoState
		}
		return nil, err
	}

	var state domain.ResumeState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal resume state: %w", err)
	}
	return &state, nil
}

// Clear drops the user's resume state. Clearing absent state is a no-op.
func (s *Store) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, Key(userID)).Err()
}
