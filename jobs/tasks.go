package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardWarmup recomputes and caches the admin dashboard snapshot.
	TaskDashboardWarmup = "dashboard:warmup"
	// DefaultWarmupCron runs the warmup every 15 minutes.
	DefaultWarmupCron = "*/15 * * * *"
)

// DashboardWarmupPayload describes a warmup run.
type DashboardWarmupPayload struct {
	Reason string `json:"reason"`
}

// NewDashboardWarmupTask constructs a warmup task. Repeated enqueues within
// the same minute collapse into one.
func NewDashboardWarmupTask(reason string) (*asynq.Task, error) {
	if reason == "" {
		reason = "cron"
	}
	data, err := json.Marshal(DashboardWarmupPayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardWarmup, data,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
		asynq.Unique(time.Minute),
	), nil
}
