package shared

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rentbrasil/rentbrasil/internal/platform/httpx"
)

// CRUDService is the contract every admin entity service satisfies. T is the
// read model, D the editable draft.
type CRUDService[T, D any] interface {
	List(ctx context.Context, filters ListFilters) ([]T, int, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, draft D) (T, error)
	Update(ctx context.Context, id string, draft D) (T, error)
	Delete(ctx context.Context, id string) error
}

// Resource serves JSON CRUD endpoints for one admin entity.
type Resource[T, D any] struct {
	name      string
	logger    *slog.Logger
	service   CRUDService[T, D]
	draftFrom func(T) D
}

// NewResource builds a Resource. draftFrom seeds partial updates with the
// stored values so PATCH bodies only need the changed fields.
func NewResource[T, D any](name string, logger *slog.Logger, service CRUDService[T, D], draftFrom func(T) D) *Resource[T, D] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resource[T, D]{name: name, logger: logger, service: service, draftFrom: draftFrom}
}

// MountRoutes registers list/show/create/replace/patch/delete under r.
func (h *Resource[T, D]) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.show)
	r.Put("/{id}", h.replace)
	r.Patch("/{id}", h.patch)
	r.Delete("/{id}", h.delete)
}

func (h *Resource[T, D]) list(w http.ResponseWriter, r *http.Request) {
	filters := ListFiltersFromRequest(r)
	rows, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewPage(rows, filters, total))
}

func (h *Resource[T, D]) show(w http.ResponseWriter, r *http.Request) {
	row, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "get", err)
		return
	}
	httpx.JSON(w, http.StatusOK, row)
}

func (h *Resource[T, D]) create(w http.ResponseWriter, r *http.Request) {
	var draft D
	if err := httpx.DecodeJSON(r, &draft); err != nil {
		h.fail(w, r, "create", err)
		return
	}
	row, err := h.service.Create(r.Context(), draft)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, row)
}

func (h *Resource[T, D]) replace(w http.ResponseWriter, r *http.Request) {
	var draft D
	if err := httpx.DecodeJSON(r, &draft); err != nil {
		h.fail(w, r, "update", err)
		return
	}
	h.update(w, r, draft)
}

func (h *Resource[T, D]) patch(w http.ResponseWriter, r *http.Request) {
	current, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "update", err)
		return
	}
	draft := h.draftFrom(current)
	if err := httpx.DecodeJSON(r, &draft); err != nil {
		h.fail(w, r, "update", err)
		return
	}
	h.update(w, r, draft)
}

func (h *Resource[T, D]) update(w http.ResponseWriter, r *http.Request, draft D) {
	row, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), draft)
	if err != nil {
		h.fail(w, r, "update", err)
		return
	}
	httpx.JSON(w, http.StatusOK, row)
}

func (h *Resource[T, D]) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Resource[T, D]) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, httpx.ErrValidation) || errors.Is(err, httpx.ErrNotFound) {
		h.logger.Debug(h.name+" "+op+" rejected", slog.Any("error", err))
	} else {
		h.logger.Error(h.name+" "+op+" failed", slog.Any("error", err), slog.String("path", r.URL.Path))
	}
	httpx.RespondError(w, err)
}
