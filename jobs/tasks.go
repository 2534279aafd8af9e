package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/dafater-app/dafater/internal/dashboard"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardWarmup is the task type for rebuilding a company's
	// cached dashboard after a ledger mutation.
	TaskDashboardWarmup = "dashboard:warmup"
)

// DashboardWarmupPayload identifies the company whose dashboard to rebuild.
type DashboardWarmupPayload struct {
	CompanyID int64 `json:"companyId"`
}

// NewDashboardWarmupTask constructs an Asynq task.
func NewDashboardWarmupTask(payload DashboardWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardWarmup, data), nil
}

// DashboardWarmupHandler rebuilds and re-caches a dashboard in the
// background so the next page load does not pay the aggregation cost.
type DashboardWarmupHandler struct {
	logger  *slog.Logger
	service *dashboard.Service
	cache   *dashboard.Cache
}

// NewDashboardWarmupHandler constructs the handler.
func NewDashboardWarmupHandler(logger *slog.Logger, service *dashboard.Service, cache *dashboard.Cache) *DashboardWarmupHandler {
	return &DashboardWarmupHandler{logger: logger, service: service, cache: cache}
}

// ProcessTask handles TaskDashboardWarmup tasks.
func (h *DashboardWarmupHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload DashboardWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	dash, err := h.service.Load(ctx, payload.CompanyID)
	if err != nil {
		return err
	}
	key, err := h.cache.BuildKey(ctx, payload.CompanyID)
	if err != nil {
		return err
	}
	var warmed dashboard.Dashboard
	err = h.cache.FetchJSON(ctx, key, &warmed, func(context.Context) (interface{}, error) {
		return dash, nil
	})
	if err != nil {
		return err
	}
	h.logger.Info("dashboard warmed", slog.Int64("company_id", payload.CompanyID))
	return nil
}
