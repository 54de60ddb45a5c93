package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rentbrasil/rentbrasil/internal/rentals"
	"github.com/rentbrasil/rentbrasil/internal/reviews"
)

const statsCacheKey = "dashboard:stats"

// Sources provides the raw dashboard data.
type Sources interface {
	CountPeople(ctx context.Context) (int, error)
	CountItems(ctx context.Context) (int, error)
	ListRentals(ctx context.Context) ([]rentals.Rental, error)
	ListReviews(ctx context.Context) ([]reviews.Review, error)
}

// Counter counts rows of one entity.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Lister lists every row of one entity.
type Lister[T any] interface {
	All(ctx context.Context) ([]T, error)
}

// ServiceSources adapts the entity services to Sources.
type ServiceSources struct {
	People  Counter
	Items   Counter
	Rentals Lister[rentals.Rental]
	Reviews Lister[reviews.Review]
}

func (s ServiceSources) CountPeople(ctx context.Context) (int, error) { return s.People.Count(ctx) }
func (s ServiceSources) CountItems(ctx context.Context) (int, error) { return s.Items.Count(ctx) }

func (s ServiceSources) ListRentals(ctx context.Context) ([]rentals.Rental, error) {
	return s.Rentals.All(ctx)
}

func (s ServiceSources) ListReviews(ctx context.Context) ([]reviews.Review, error) {
	return s.Reviews.All(ctx)
}

// Service loads the dashboard snapshot through the versioned cache.
type Service struct {
	sources Sources
	cache   *Cache
	opts    Options
	logger  *slog.Logger
}

// NewService wires Sources with a Cache. cache may be nil.
func NewService(sources Sources, cache *Cache, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{sources: sources, cache: cache, opts: opts, logger: logger}
}

// Stats returns the cached snapshot, computing it on a miss.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	key, err := s.cache.BuildKey(ctx, statsCacheKey)
	if err != nil {
		return Stats{}, fmt.Errorf("dashboard: cache key: %w", err)
	}
	var stats Stats
	err = s.cache.FetchJSON(ctx, key, &stats, func(ctx context.Context) (any, error) {
		return s.Compute(ctx)
	})
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// Warm recomputes the snapshot and stores it under the current version.
func (s *Service) Warm(ctx context.Context) (Stats, error) {
	stats, err := s.Compute(ctx)
	if err != nil {
		return Stats{}, err
	}
	key, err := s.cache.BuildKey(ctx, statsCacheKey)
	if err != nil {
		return Stats{}, fmt.Errorf("dashboard: cache key: %w", err)
	}
	if err := s.cache.StoreJSON(ctx, key, stats); err != nil {
		return Stats{}, fmt.Errorf("dashboard: store snapshot: %w", err)
	}
	return stats, nil
}

// Compute loads every source concurrently and composes the snapshot,
// bypassing the cache. The first failing source cancels the others and its
// error is returned wrapped with the source name.
func (s *Service) Compute(ctx context.Context) (Stats, error) {
	started := time.Now()
	var in Input
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.sources.CountPeople(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: load people: %w", err)
		}
		in.PeopleCount = n
		return nil
	})
	g.Go(func() error {
		n, err := s.sources.CountItems(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: load items: %w", err)
		}
		in.ItemCount = n
		return nil
	})
	g.Go(func() error {
		list, err := s.sources.ListRentals(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: load rentals: %w", err)
		}
		in.Rentals = list
		return nil
	})
	g.Go(func() error {
		list, err := s.sources.ListReviews(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: load reviews: %w", err)
		}
		in.Reviews = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	stats := Compose(in, s.opts)
	s.logger.Debug("dashboard computed",
		slog.Int("rentals", len(in.Rentals)),
		slog.Int("reviews", len(in.Reviews)),
		slog.Duration("took", time.Since(started)))
	return stats, nil
}
