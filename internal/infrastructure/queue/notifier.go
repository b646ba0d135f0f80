package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/shared"
	"library-catalog/pkg/logger"
)

// Enqueuer is the part of *asynq.Client the notifier needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

var _ Enqueuer = (*asynq.Client)(nil)

// uniqueWindow collapses bursts of writes into a single refresh task.
const uniqueWindow = 10 * time.Second

// SummaryNotifier enqueues a catalog summary refresh on every change.
type SummaryNotifier struct {
	client Enqueuer
	queue  string
}

func NewSummaryNotifier(client Enqueuer, queue string) *SummaryNotifier {
	return &SummaryNotifier{client: client, queue: queue}
}

var _ shared.ChangeNotifier = (*SummaryNotifier)(nil)

func (n *SummaryNotifier) CatalogChanged(ctx context.Context) {
	payload, err := json.Marshal(shared.RefreshSummaryPayload{Reason: "catalog changed"})
	if err != nil {
		log.Error().Err(err).Msg("marshal refresh summary payload")
		return
	}

	task := asynq.NewTask(shared.TypeRefreshCatalogSummary, payload)
	info, err := n.client.EnqueueContext(ctx, task,
		asynq.Queue(n.queue),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
		asynq.Unique(uniqueWindow),
	)
	switch {
	case errors.Is(err, asynq.ErrDuplicateTask):
		logger.Debug("summary refresh already queued")
	case err != nil:
		logger.Warn("failed to enqueue summary refresh", err)
	default:
		log.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("summary refresh enqueued")
	}
}
