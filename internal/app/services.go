package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/rentbrasil/rentbrasil/internal/catalog"
	"github.com/rentbrasil/rentbrasil/internal/condominiums"
	"github.com/rentbrasil/rentbrasil/internal/dashboard"
	"github.com/rentbrasil/rentbrasil/internal/items"
	"github.com/rentbrasil/rentbrasil/internal/people"
	"github.com/rentbrasil/rentbrasil/internal/pricing"
	"github.com/rentbrasil/rentbrasil/internal/rentals"
	"github.com/rentbrasil/rentbrasil/internal/requests"
	"github.com/rentbrasil/rentbrasil/internal/reviews"
	"github.com/rentbrasil/rentbrasil/internal/shared"
)

// Services holds every domain service of one process.
type Services struct {
	Location *time.Location

	People       *people.Service
	Items        *items.Service
	Condominiums *condominiums.Service
	Rentals      *rentals.Service
	Reviews      *reviews.Service
	Requests     *requests.Service

	Selection      *condominiums.Selection
	Catalog        *catalog.Service
	DashboardCache *dashboard.Cache
	Dashboard      *dashboard.Service
}

// NewServices wires repositories, services and caches. redisClient may be
// nil, in which case the selection is process local and the dashboard is
// computed on every request.
func NewServices(cfg *Config, pool *pgxpool.Pool, redisClient *redis.Client, logger *slog.Logger) (*Services, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tz := ""
	var dashboardTTL, catalogTTL time.Duration
	if cfg != nil {
		tz, dashboardTTL, catalogTTL = cfg.AppTimezone, cfg.DashboardCacheTTL, cfg.CatalogSnapshotTTL
	}
	loc, err := pricing.LoadLocation(tz)
	if err != nil {
		return nil, err
	}

	s := &Services{Location: loc}

	var dashboardCache *dashboard.Cache
	if redisClient != nil {
		dashboardCache = dashboard.NewCache(redisClient, dashboardTTL, logger)
	}
	s.DashboardCache = dashboardCache

	// The catalog reads through the entity services, which in turn notify it
	// on writes, so it is reached through a closure.
	catalogInvalidator := shared.InvalidatorFunc(func(ctx context.Context) {
		if s.Catalog != nil {
			s.Catalog.Invalidate(ctx)
		}
	})
	var writes shared.Invalidator = catalogInvalidator
	if dashboardCache != nil {
		writes = shared.Invalidators{catalogInvalidator, dashboardCache}
	}

	s.People = people.NewService(people.NewRepository(pool), writes)
	s.Items = items.NewService(items.NewRepository(pool), writes)
	s.Condominiums = condominiums.NewService(condominiums.NewRepository(pool), writes)
	s.Rentals = rentals.NewService(rentals.NewRepository(pool, loc), loc, writes)
	s.Reviews = reviews.NewService(reviews.NewRepository(pool), writes)
	s.Requests = requests.NewService(requests.NewRepository(pool), catalogInvalidator)

	s.Selection = condominiums.NewSelection(redisClient, logger)
	s.Catalog = catalog.NewService(catalog.Sources{
		Items:    s.Items,
		People:   s.People,
		Reviews:  s.Reviews,
		Requests: s.Requests,
	}, s.Selection, catalogTTL, logger)

	s.Dashboard = dashboard.NewService(dashboard.ServiceSources{
		People:  s.People,
		Items:   s.Items,
		Rentals: s.Rentals,
		Reviews: s.Reviews,
	}, dashboardCache, dashboard.Options{Location: loc}, logger)

	return s, nil
}

// Close releases in-process caches.
func (s *Services) Close() {
	if s != nil && s.Catalog != nil {
		s.Catalog.Close()
	}
}
