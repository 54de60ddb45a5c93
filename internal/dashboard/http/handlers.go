package dashboardhttp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/rentbrasil/rentbrasil/internal/dashboard"
	"github.com/rentbrasil/rentbrasil/internal/dashboard/export"
	"github.com/rentbrasil/rentbrasil/internal/platform/httpx"
)

const requestTimeout = 5 * time.Second

// StatsService defines the dashboard data contract used by the handler.
type StatsService interface {
	Stats(ctx context.Context) (dashboard.Stats, error)
}

// Handler serves the admin dashboard JSON and CSV endpoints.
type Handler struct {
	logger  *slog.Logger
	service StatsService
	csvPool sync.Pool
	now     func() time.Time
}

// NewHandler constructs the dashboard HTTP handler.
func NewHandler(logger *slog.Logger, service StatsService) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{logger: logger, service: service, now: time.Now}
	h.csvPool.New = func() any { return new(bytes.Buffer) }
	return h
}

// WithNow overrides the clock used for export file names.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	stats, err := h.service.Stats(ctx)
	if err != nil {
		h.handleServerError(w, "load dashboard", err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	stats, err := h.service.Stats(ctx)
	if err != nil {
		h.handleServerError(w, "load dashboard", err)
		return
	}

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	if err := export.WriteStatsCSV(buf, stats); err != nil {
		h.handleServerError(w, "write dashboard csv", err)
		return
	}

	filename := fmt.Sprintf("dashboard-%s.csv", h.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("stream csv", slog.Any("error", err))
	}
}

func (h *Handler) handleServerError(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, slog.Any("error", err))
	httpx.RespondError(w, err)
}
