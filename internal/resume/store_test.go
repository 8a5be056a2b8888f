package resume

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoplay/server/internal/domain"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, time.Hour), mr
}

func TestSetAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	state := &domain.ResumeState{AudioID: "a1", OffsetSecs: 90, UpdatedAt: time.Now().UTC()}
	require.NoError(t, store.Set(ctx, "u1", state))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a1", got.AudioID)
	assert.Equal(t, 90, got.OffsetSecs)
}

func TestGetNoState(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "never-played")
	assert.ErrorIs(t, err, ErrNoState)
}

func TestSetAppliesTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "u1", &domain.ResumeState{AudioID: "a1"}))

	// The pointer expires rather than lingering forever.
	mr.FastForward(2 * time.Hour)
	_, err := store.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrNoState)
}

func TestClear(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "u1", &domain.ResumeState{AudioID: "a1"}))
	require.NoError(t, store.Clear(ctx, "u1"))

	_, err := store.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrNoState)
}

func TestKeysAreScopedPerUser(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "u1", &domain.ResumeState{AudioID: "a1"}))
	require.NoError(t, store.Set(ctx, "u2", &domain.ResumeState{AudioID: "a2"}))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a1", got.AudioID)
}
