package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"library-catalog/internal/domains/catalog/service"
	"library-catalog/internal/shared"
	"library-catalog/pkg/logger"
)

// RefreshSummaryHandler recomputes the catalog summary and writes it to the cache.
type RefreshSummaryHandler struct {
	service service.ServiceInterface
}

func NewRefreshSummaryHandler(svc service.ServiceInterface) *RefreshSummaryHandler {
	return &RefreshSummaryHandler{service: svc}
}

// ProcessTask accepts an empty payload (scheduler) or a RefreshSummaryPayload.
// A store error is returned so asynq retries the task.
func (h *RefreshSummaryHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.RefreshSummaryPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			logger.Error("RefreshSummary: invalid payload", err)
			return fmt.Errorf("unmarshal refresh summary payload: %w: %w", err, asynq.SkipRetry)
		}
	}

	summary, err := h.service.Refresh(ctx)
	if err != nil {
		logger.Error("RefreshSummary: refresh failed", err)
		return err
	}

	logger.Info("RefreshSummary: cache updated", map[string]interface{}{
		"reason":    payload.Reason,
		"books":     summary.Books,
		"copies":    summary.Copies,
		"available": summary.AvailableCopies,
	})
	return nil
}
