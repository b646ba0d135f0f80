package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"library-catalog/internal/config"
	"library-catalog/internal/shared"
	"library-catalog/pkg/logger"
)

// RedisOpt is the asynq connection for the configured Redis.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerRefreshSummaryJob()
}

// ================================================
// JOB: Refresh catalog summary (JOB_SUMMARY_REFRESH_CRON, default every 10 minutes)
// ================================================
// Change notifications already refresh the summary; the cron run repairs
// it after missed or failed tasks.
func (s *Scheduler) registerRefreshSummaryJob() error {
	payload, err := json.Marshal(shared.RefreshSummaryPayload{Reason: "scheduled"})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeRefreshCatalogSummary, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.SummaryRefreshCron,
		task,
		asynq.Queue(s.jobConfig.QueueName),
		asynq.MaxRetry(2),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register RefreshCatalogSummary job", err)
		return err
	}

	logger.Info("Registered RefreshCatalogSummary", map[string]interface{}{
		"cron":  s.jobConfig.SummaryRefreshCron,
		"queue": s.jobConfig.QueueName,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
