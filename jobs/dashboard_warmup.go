package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/rentbrasil/rentbrasil/internal/dashboard"
	jobmetrics "github.com/rentbrasil/rentbrasil/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// Warmer recomputes and stores the dashboard snapshot.
type Warmer interface {
	Warm(ctx context.Context) (dashboard.Stats, error)
}

// DashboardWarmupJob keeps the dashboard cache hot between admin visits.
type DashboardWarmupJob struct {
	Dashboard Warmer
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	Timeout   time.Duration
}

// NewDashboardWarmupJob wires dependencies for the warmup handler.
func NewDashboardWarmupJob(warmer Warmer, logger *slog.Logger, metrics *jobmetrics.Metrics) *DashboardWarmupJob {
	return &DashboardWarmupJob{
		Dashboard: warmer,
		Logger:    logger,
		Metrics:   metrics,
		Timeout:   time.Minute,
	}
}

// Handle processes dashboard warmup tasks.
func (j *DashboardWarmupJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Dashboard == nil {
		return errors.New("dashboard warmup: handler not configured")
	}
	var payload DashboardWarmupPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return errors.Join(err, asynq.SkipRetry)
		}
	}

	tracker := j.metrics().Track(TaskDashboardWarmup)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("reason", payload.Reason))
	start := time.Now()

	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	stats, err := j.Dashboard.Warm(ctx)
	if err != nil {
		logger.Error("warm dashboard", slog.Any("error", err))
		return err
	}

	logger.Info("completed dashboard warmup",
		slog.Int("rentals", stats.ActiveRentalsCount),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *DashboardWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskDashboardWarmup))
	}
	return slog.Default().With(slog.String("job", TaskDashboardWarmup))
}

func (j *DashboardWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
