package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/karlseguin/ccache/v3"
	"golang.org/x/sync/errgroup"

	"github.com/rentbrasil/rentbrasil/internal/items"
	"github.com/rentbrasil/rentbrasil/internal/people"
	"github.com/rentbrasil/rentbrasil/internal/platform/httpx"
	"github.com/rentbrasil/rentbrasil/internal/requests"
	"github.com/rentbrasil/rentbrasil/internal/reviews"
	"github.com/rentbrasil/rentbrasil/internal/shared"
)

// DefaultSnapshotTTL bounds how stale a catalog snapshot may get when no
// write invalidates it.
const DefaultSnapshotTTL = 30 * time.Second

const (
	catalogSnapshotKey = "catalog"
	requestSnapshotKey = "requests"
)

// ItemSource lists every item.
type ItemSource interface {
	All(ctx context.Context) ([]items.Item, error)
	Get(ctx context.Context, id string) (items.Item, error)
}

// PersonSource lists every person.
type PersonSource interface {
	All(ctx context.Context) ([]people.Person, error)
	Get(ctx context.Context, id string) (people.Person, error)
}

// ReviewSource lists reviews.
type ReviewSource interface {
	All(ctx context.Context) ([]reviews.Review, error)
	ForItem(ctx context.Context, itemID string) ([]reviews.Review, error)
}

// RequestSource lists every item request.
type RequestSource interface {
	All(ctx context.Context) ([]requests.Request, error)
}

// Selector supplies the current condominium when a query names none.
type Selector interface {
	Current() string
}

// Sources groups the data sources of the catalog.
type Sources struct {
	Items    ItemSource
	People   PersonSource
	Reviews  ReviewSource
	Requests RequestSource
}

// Service loads catalog data concurrently, keeps a short lived in-process
// snapshot and applies the Engine to it.
type Service struct {
	sources  Sources
	selector Selector
	engine   *Engine
	logger   *slog.Logger
	ttl      time.Duration

	// generation is part of every snapshot key. A load that was already
	// running when Invalidate bumped it stores under a key nobody reads.
	generation atomic.Uint64
	catalog    *ccache.Cache[Input]
	requests   *ccache.Cache[RequestInput]
}

// NewService constructs a Service. selector may be nil.
func NewService(sources Sources, selector Selector, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sources:  sources,
		selector: selector,
		engine:   NewEngine(),
		logger:   logger,
		ttl:      ttl,
		catalog:  ccache.New(ccache.Configure[Input]().MaxSize(4)),
		requests: ccache.New(ccache.Configure[RequestInput]().MaxSize(4)),
	}
}

// Close stops the snapshot caches' background workers.
func (s *Service) Close() {
	s.catalog.Stop()
	s.requests.Stop()
}

// Invalidate drops both snapshots. It satisfies shared.Invalidator.
func (s *Service) Invalidate(context.Context) {
	s.generation.Add(1)
	s.catalog.Clear()
	s.requests.Clear()
}

var _ shared.Invalidator = (*Service)(nil)

// Catalog returns the filtered catalog. An empty q.CondominiumID falls back to
// the current selection; with neither the result is empty.
func (s *Service) Catalog(ctx context.Context, q Query) ([]Entry, error) {
	q.CondominiumID = s.condominium(q.CondominiumID)
	if q.CondominiumID == "" {
		return []Entry{}, nil
	}
	in, err := s.catalogInput(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.Apply(in, q), nil
}

// Requests returns the filtered request board, scoped like Catalog.
func (s *Service) Requests(ctx context.Context, q RequestQuery) ([]RequestEntry, error) {
	q.CondominiumID = s.condominium(q.CondominiumID)
	if q.CondominiumID == "" {
		return []RequestEntry{}, nil
	}
	item, err := s.requests.Fetch(s.snapshotKey(requestSnapshotKey), s.ttl, func() (RequestInput, error) {
		var in RequestInput
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			list, err := s.sources.Requests.All(gctx)
			if err != nil {
				return fmt.Errorf("catalog: load requests: %w", err)
			}
			in.Requests = list
			return nil
		})
		g.Go(func() error {
			list, err := s.sources.People.All(gctx)
			if err != nil {
				return fmt.Errorf("catalog: load people: %w", err)
			}
			in.People = list
			return nil
		})
		return in, g.Wait()
	})
	if err != nil {
		return nil, err
	}
	return FilterRequests(item.Value(), q), nil
}

// Item returns the detail entry of one item with its tiers and rating.
func (s *Service) Item(ctx context.Context, id string) (Entry, error) {
	it, err := s.sources.Items.Get(ctx, id)
	if err != nil {
		return Entry{}, err
	}

	var (
		advertiser  *people.Person
		itemReviews []reviews.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.sources.People.Get(gctx, it.AdvertiserID)
		if err != nil {
			if errors.Is(err, httpx.ErrNotFound) || errors.Is(err, httpx.ErrValidation) {
				return nil
			}
			return fmt.Errorf("catalog: load advertiser: %w", err)
		}
		advertiser = &p
		return nil
	})
	g.Go(func() error {
		list, err := s.sources.Reviews.ForItem(gctx, it.ID)
		if err != nil {
			return fmt.Errorf("catalog: load reviews: %w", err)
		}
		itemReviews = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return Entry{}, err
	}
	return Detail(it, advertiser, itemReviews), nil
}

func (s *Service) catalogInput(ctx context.Context) (Input, error) {
	item, err := s.catalog.Fetch(s.snapshotKey(catalogSnapshotKey), s.ttl, func() (Input, error) {
		started := time.Now()
		var in Input
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			list, err := s.sources.Items.All(gctx)
			if err != nil {
				return fmt.Errorf("catalog: load items: %w", err)
			}
			in.Items = list
			return nil
		})
		g.Go(func() error {
			list, err := s.sources.People.All(gctx)
			if err != nil {
				return fmt.Errorf("catalog: load people: %w", err)
			}
			in.People = list
			return nil
		})
		g.Go(func() error {
			list, err := s.sources.Reviews.All(gctx)
			if err != nil {
				return fmt.Errorf("catalog: load reviews: %w", err)
			}
			in.Reviews = list
			return nil
		})
		if err := g.Wait(); err != nil {
			return Input{}, err
		}
		s.logger.Debug("catalog snapshot loaded",
			slog.Int("items", len(in.Items)),
			slog.Duration("took", time.Since(started)))
		return in, nil
	})
	if err != nil {
		return Input{}, err
	}
	return item.Value(), nil
}

func (s *Service) snapshotKey(base string) string {
	return base + ":" + strconv.FormatUint(s.generation.Load(), 10)
}

func (s *Service) condominium(id string) string {
	if id != "" || s.selector == nil {
		return id
	}
	return s.selector.Current()
}
