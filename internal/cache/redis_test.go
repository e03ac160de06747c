package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type cachedThing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetSetJSON(t *testing.T) {
	useTestRedis(t)
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, SetJSON(ctx, "thing:1", cachedThing{Name: "a", Count: 3}, time.Minute))

		var got cachedThing
		found, err := GetJSON(ctx, "thing:1", &got)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, cachedThing{Name: "a", Count: 3}, got)
	})

	t.Run("miss", func(t *testing.T) {
		var got cachedThing
		found, err := GetJSON(ctx, "thing:absent", &got)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestGetSetJSONWithoutClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	// Without Redis every operation degrades to a no-op.
	require.NoError(t, SetJSON(ctx, "thing:1", cachedThing{Name: "a"}, time.Minute))

	var got cachedThing
	found, err := GetJSON(ctx, "thing:1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside(t *testing.T) {
	useTestRedis(t)
	ctx := context.Background()

	t.Run("miss calls fetch and caches", func(t *testing.T) {
		calls := 0
		fetch := func(dest *cachedThing) func() error {
			return func() error {
				calls++
				*dest = cachedThing{Name: "fresh", Count: calls}
				return nil
			}
		}

		var first cachedThing
		require.NoError(t, Aside(ctx, "aside:1", &first, time.Minute, fetch(&first)))
		assert.Equal(t, 1, calls)
		assert.Equal(t, "fresh", first.Name)

		var second cachedThing
		require.NoError(t, Aside(ctx, "aside:1", &second, time.Minute, fetch(&second)))
		assert.Equal(t, 1, calls, "hit must not call fetch again")
		assert.Equal(t, first, second)
	})

	t.Run("fetch error propagates and nothing is cached", func(t *testing.T) {
		var dest cachedThing
		wantErr := assert.AnError
		err := Aside(ctx, "aside:broken", &dest, time.Minute, func() error { return wantErr })
		require.ErrorIs(t, err, wantErr)

		found, err := GetJSON(ctx, "aside:broken", &dest)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("without a client the fetch always runs", func(t *testing.T) {
		SetClient(nil)
		calls := 0
		var dest cachedThing
		for i := 0; i < 2; i++ {
			require.NoError(t, Aside(ctx, "aside:nocache", &dest, time.Minute, func() error {
				calls++
				return nil
			}))
		}
		assert.Equal(t, 2, calls)
	})
}

func TestInvalidateCommunity(t *testing.T) {
	mr := useTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, CommunityKey(7), cachedThing{Name: "c"}, time.Minute))
	require.NoError(t, SetJSON(ctx, RosterKey(7), []cachedThing{}, time.Minute))
	require.NoError(t, SetJSON(ctx, CommunityListKey, []cachedThing{}, time.Minute))
	require.NoError(t, SetJSON(ctx, CommunityKey(8), cachedThing{Name: "other"}, time.Minute))

	InvalidateCommunity(ctx, 7)

	assert.False(t, mr.Exists(CommunityKey(7)))
	assert.False(t, mr.Exists(RosterKey(7)))
	assert.False(t, mr.Exists(CommunityListKey))
	assert.True(t, mr.Exists(CommunityKey(8)), "unrelated community stays cached")
}
