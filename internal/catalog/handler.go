package catalog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rentbrasil/rentbrasil/internal/items"
	"github.com/rentbrasil/rentbrasil/internal/platform/httpx"
)

// Handler serves the public catalog endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the catalog handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the catalog, request board, categories and item detail endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/catalog", h.handleCatalog)
	r.Get("/catalog/requests", h.handleRequests)
	r.Get("/catalog/categories", h.handleCategories)
	r.Get("/items/{id}", h.handleItem)
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	entries, err := h.service.Catalog(r.Context(), Query{
		CondominiumID: qs.Get("condominio_id"),
		Text:          qs.Get("q"),
		Category:      qs.Get("categoria"),
		Sort:          ParseSortKey(qs.Get("ordenar")),
	})
	if err != nil {
		h.logger.Error("load catalog failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entries)
}

func (h *Handler) handleRequests(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	entries, err := h.service.Requests(r.Context(), RequestQuery{
		CondominiumID: qs.Get("condominio_id"),
		Text:          qs.Get("q"),
		Sort:          ParseRequestSort(qs.Get("ordenar")),
	})
	if err != nil {
		h.logger.Error("load request board failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entries)
}

func (h *Handler) handleCategories(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, items.Categories)
}

func (h *Handler) handleItem(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.Item(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Warn("load item failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}
