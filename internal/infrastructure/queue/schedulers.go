package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"mediashelf-backend/internal/config"
	"mediashelf-backend/internal/domains/enrichment/job"
	"mediashelf-backend/internal/shared"
	"mediashelf-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobsConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobsConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
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
	return s.registerEnrichmentSweepJob()
}

// registerEnrichmentSweepJob schedules the nightly sweep that backfills
// details for rows nobody has opened yet. The default cron fires at 3 AM,
// when a consumed daily provider quota has usually reset.
//
// MaxRetry is zero on purpose: a rate-limited sweep already exits cleanly,
// and retrying it would just hit the same quota again.
func (s *Scheduler) registerEnrichmentSweepJob() error {
	payload, err := json.Marshal(job.SweepPayload{
		BatchSize: s.jobConfig.SweepBatchSize,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeEnrichmentSweep, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.SweepCron,
		task,
		asynq.Queue(shared.QueueEnrichment),
		asynq.MaxRetry(0),
		asynq.Timeout(30*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register EnrichmentSweep job", err)
		return err
	}

	logger.Info("Registered EnrichmentSweep", map[string]interface{}{
		"cron":       s.jobConfig.SweepCron,
		"batch_size": s.jobConfig.SweepBatchSize,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
