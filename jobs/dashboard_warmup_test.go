package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentbrasil/rentbrasil/internal/dashboard"
	jobmetrics "github.com/rentbrasil/rentbrasil/internal/jobs"
)

type stubWarmer struct {
	calls int
	err   error
}

func (s *stubWarmer) Warm(ctx context.Context) (dashboard.Stats, error) {
	s.calls++
	if _, ok := ctx.Deadline(); !ok {
		return dashboard.Stats{}, errors.New("expected a deadline")
	}
	return dashboard.Stats{ActiveRentalsCount: 3}, s.err
}

func TestDashboardWarmupTask(t *testing.T) {
	task, err := NewDashboardWarmupTask("")
	require.NoError(t, err)
	assert.Equal(t, TaskDashboardWarmup, task.Type())

	var payload DashboardWarmupPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "cron", payload.Reason)
}

func TestDashboardWarmupJobHandle(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := jobmetrics.NewMetrics(registry)
	warmer := &stubWarmer{}
	job := NewDashboardWarmupJob(warmer, nil, metrics)

	task, err := NewDashboardWarmupTask("admin")
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, 1, warmer.calls)

	warmer.err = errors.New("dashboard: load rentals: boom")
	err = job.Handle(context.Background(), task)
	require.Error(t, err)
	assert.Equal(t, 2, warmer.calls)

	assert.Equal(t, 2, seriesCount(t, registry, "rent_jobs_total"))
	assert.Equal(t, 1, seriesCount(t, registry, "rent_jobs_failures_total"))
}

func seriesCount(t *testing.T, registry *prometheus.Registry, name string) int {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			return len(family.GetMetric())
		}
	}
	return 0
}

func TestDashboardWarmupJobRejectsMalformedPayload(t *testing.T) {
	warmer := &stubWarmer{}
	job := NewDashboardWarmupJob(warmer, nil, jobmetrics.NewMetrics(prometheus.NewRegistry()))

	err := job.Handle(context.Background(), asynq.NewTask(TaskDashboardWarmup, []byte("{")))
	require.ErrorIs(t, err, asynq.SkipRetry)
	assert.Zero(t, warmer.calls)
}

func TestDashboardWarmupJobNotConfigured(t *testing.T) {
	var job *DashboardWarmupJob
	require.Error(t, job.Handle(context.Background(), asynq.NewTask(TaskDashboardWarmup, nil)))
}

type stubEnqueuer struct {
	err error
}

func (s stubEnqueuer) EnqueueDashboardWarmup(context.Context, string) (*asynq.TaskInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &asynq.TaskInfo{ID: "task-1"}, nil
}

type stubInspector struct {
	info *asynq.QueueInfo
	err  error
}

func (s stubInspector) GetQueueInfo(string) (*asynq.QueueInfo, error) { return s.info, s.err }

func serve(h *Handler, method, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/jobs", h.MountRoutes)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHandlerHealth(t *testing.T) {
	rec := serve(NewHandler(nil, nil, nil), http.MethodGet, "/jobs/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"queue":"default","pending":0,"active":0,"failed":0}`, rec.Body.String())

	h := NewHandler(stubInspector{info: &asynq.QueueInfo{Queue: "default", Pending: 4, Failed: 1}}, nil, nil)
	rec = serve(h, http.MethodGet, "/jobs/health")
	assert.JSONEq(t, `{"queue":"default","pending":4,"active":0,"failed":1}`, rec.Body.String())

	rec = serve(NewHandler(stubInspector{err: errors.New("redis down")}, nil, nil), http.MethodGet, "/jobs/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandlerWarmup(t *testing.T) {
	rec := serve(NewHandler(nil, stubEnqueuer{}, nil), http.MethodPost, "/jobs/dashboard-warmup")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"status":"queued","id":"task-1"}`, rec.Body.String())

	rec = serve(NewHandler(nil, stubEnqueuer{err: asynq.ErrDuplicateTask}, nil), http.MethodPost, "/jobs/dashboard-warmup")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"status":"already queued"}`, rec.Body.String())

	rec = serve(NewHandler(nil, nil, nil), http.MethodPost, "/jobs/dashboard-warmup")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
