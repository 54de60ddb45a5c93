package condominiums

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rentbrasil/rentbrasil/internal/platform/httpx"
	"github.com/rentbrasil/rentbrasil/internal/shared"
)

// NewHandler exposes the admin endpoints for condominiums.
func NewHandler(logger *slog.Logger, service *Service) *shared.Resource[Condominium, Draft] {
	return shared.NewResource[Condominium, Draft]("condominiums", logger, service, DraftFrom)
}

// PublicHandler serves the condominium picker and the current selection.
type PublicHandler struct {
	logger    *slog.Logger
	service   *Service
	selection *Selection
}

// NewPublicHandler constructs the public condominium handler.
func NewPublicHandler(logger *slog.Logger, service *Service, selection *Selection) *PublicHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PublicHandler{logger: logger, service: service, selection: selection}
}

// MountRoutes registers GET /condominiums.
func (h *PublicHandler) MountRoutes(r chi.Router) {
	r.Get("/condominiums", h.handleList)
}

// MountSelectionRoutes registers the selection endpoints. writes wraps PUT so
// callers can rate limit it.
func (h *PublicHandler) MountSelectionRoutes(r chi.Router, writes func(http.Handler) http.Handler) {
	if writes == nil {
		writes = func(next http.Handler) http.Handler { return next }
	}
	r.Get("/catalog/selection", h.handleCurrent)
	r.With(writes).Put("/catalog/selection", h.handleSelect)
}

func (h *PublicHandler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.All(r.Context())
	if err != nil {
		h.logger.Error("list condominiums failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Condominium{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

type selectionPayload struct {
	CondominiumID string       `json:"condominio_id"`
	Condominium   *Condominium `json:"condominio,omitempty"`
}

func (h *PublicHandler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	id := h.selection.Current()
	out := selectionPayload{CondominiumID: id}
	if id != "" {
		c, err := h.service.Get(r.Context(), id)
		switch {
		case err == nil:
			out.Condominium = &c
		case errors.Is(err, httpx.ErrNotFound):
			// Selection outlived the condominium; report the bare ID.
		default:
			h.logger.Error("load selected condominium failed", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *PublicHandler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var in selectionPayload
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	id := strings.TrimSpace(in.CondominiumID)
	if id == "" {
		if err := h.selection.Clear(r.Context()); err != nil {
			h.logger.Error("clear selection failed", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, selectionPayload{})
		return
	}
	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.selection.Select(r.Context(), c.ID); err != nil {
		h.logger.Error("select condominium failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, selectionPayload{CondominiumID: c.ID, Condominium: &c})
}
