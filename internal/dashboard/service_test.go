package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentbrasil/rentbrasil/internal/rentals"
	"github.com/rentbrasil/rentbrasil/internal/reviews"
)

type stubSources struct {
	in         Input
	rentalErr  error
	rentalCall atomic.Int32
}

func (s *stubSources) CountPeople(context.Context) (int, error) { return s.in.PeopleCount, nil }
func (s *stubSources) CountItems(context.Context) (int, error) { return s.in.ItemCount, nil }

func (s *stubSources) ListRentals(context.Context) ([]rentals.Rental, error) {
	s.rentalCall.Add(1)
	return s.in.Rentals, s.rentalErr
}

func (s *stubSources) ListReviews(ctx context.Context) ([]reviews.Review, error) {
	return s.in.Reviews, nil
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute, nil), mr
}

func TestStatsCachesUntilBump(t *testing.T) {
	cache, _ := newTestCache(t)
	src := &stubSources{in: sampleInput(t)}
	svc := NewService(src, cache, Options{Location: location(t)}, nil)
	ctx := context.Background()

	first, err := svc.Stats(ctx)
	require.NoError(t, err)
	second, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.rentalCall.Load())
	assert.Equal(t, first.TotalMoneyCirculated.StringFixed(2), second.TotalMoneyCirculated.StringFixed(2))
	assert.Equal(t, "150.00", second.TotalMoneyCirculated.StringFixed(2))

	cache.Invalidate(ctx)
	_, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.rentalCall.Load())
}

func TestBumpAdvancesVersion(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	key, err := cache.BuildKey(ctx, "dashboard", "stats")
	require.NoError(t, err)
	assert.Equal(t, "dashboard:stats:1", key)

	require.NoError(t, cache.Bump(ctx))
	key, err = cache.BuildKey(ctx, "dashboard", "stats")
	require.NoError(t, err)
	assert.Equal(t, "dashboard:stats:2", key)

	ver, err := mr.Get(cacheVersionKey)
	require.NoError(t, err)
	assert.Equal(t, "2", ver)
}

func TestWarmStoresSnapshot(t *testing.T) {
	cache, mr := newTestCache(t)
	src := &stubSources{in: sampleInput(t)}
	svc := NewService(src, cache, Options{Location: location(t)}, nil)
	ctx := context.Background()

	_, err := svc.Warm(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists(statsCacheKey+":1"))

	_, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.rentalCall.Load())
}

func TestComputeNamesFailingSource(t *testing.T) {
	boom := errors.New("timeout")
	src := &stubSources{in: sampleInput(t), rentalErr: boom}
	svc := NewService(src, nil, Options{}, nil)

	_, err := svc.Stats(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "dashboard: load rentals")
}

func TestNilCacheComputesEveryTime(t *testing.T) {
	src := &stubSources{in: sampleInput(t)}
	svc := NewService(src, nil, Options{Location: location(t)}, nil)

	for i := 0; i < 2; i++ {
		stats, err := svc.Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, stats.ActiveRentalsCount)
	}
	assert.Equal(t, int32(2), src.rentalCall.Load())
}
