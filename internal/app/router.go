package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rentbrasil/rentbrasil/internal/catalog"
	"github.com/rentbrasil/rentbrasil/internal/condominiums"
	dashboardhttp "github.com/rentbrasil/rentbrasil/internal/dashboard/http"
	"github.com/rentbrasil/rentbrasil/internal/observability"
)

// Mounter is implemented by every handler that registers its own routes.
type Mounter interface {
	MountRoutes(r chi.Router)
}

// AdminResources are the CRUD handlers mounted under /admin.
type AdminResources struct {
	People       Mounter
	Items        Mounter
	Condominiums Mounter
	Rentals      Mounter
	Reviews      Mounter
	Requests     Mounter
	Jobs         Mounter
}

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger  *slog.Logger
	Config  *Config
	Metrics *observability.Metrics

	CatalogHandler     *catalog.Handler
	CondominiumHandler *condominiums.PublicHandler
	DashboardHandler   *dashboardhttp.Handler
	Admin              AdminResources
}

// NewRouter constructs the chi.Router with the application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.CatalogHandler != nil {
		params.CatalogHandler.MountRoutes(r)
	}
	if params.CondominiumHandler != nil {
		params.CondominiumHandler.MountRoutes(r)
		params.CondominiumHandler.MountSelectionRoutes(r, SelectionWriteLimit())
	}

	var user, hash string
	if params.Config != nil {
		user, hash = params.Config.AdminUser, params.Config.AdminPasswordHash
	}
	r.Route("/admin", func(r chi.Router) {
		r.Use(AdminAuth(user, hash, params.Logger))
		mountResource(r, "/people", params.Admin.People)
		mountResource(r, "/items", params.Admin.Items)
		mountResource(r, "/condominiums", params.Admin.Condominiums)
		mountResource(r, "/rentals", params.Admin.Rentals)
		mountResource(r, "/reviews", params.Admin.Reviews)
		mountResource(r, "/requests", params.Admin.Requests)
		mountResource(r, "/jobs", params.Admin.Jobs)
		if params.DashboardHandler != nil {
			params.DashboardHandler.MountRoutes(r)
		}
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}

func mountResource(r chi.Router, pattern string, h Mounter) {
	if h == nil {
		return
	}
	r.Route(pattern, h.MountRoutes)
}
