// Package scheduler runs recurring Monte Carlo batches on a cron
// schedule, recording each batch to history and pushing a report through
// a notifier.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"PMFSimulator/internal/engine"
	"PMFSimulator/internal/model"
	"PMFSimulator/internal/notifier"
	"PMFSimulator/internal/report"
	"PMFSimulator/internal/store"
)

// Scheduler runs a recurring simulation batch and reports the result.
type Scheduler struct {
	Cron           *cron.Cron
	Params         model.FundParams
	NumSimulations int
	Seed           *int64
	Store          store.Recorder
	Notifier       notifier.Notifier
	Ctx            context.Context
}

// NewScheduler creates a Scheduler bound to the given fund parameters and
// dependencies. A nil Seed means each scheduled run draws a fresh seed.
func NewScheduler(ctx context.Context, params model.FundParams, numSimulations int, seed *int64, rec store.Recorder, n notifier.Notifier) *Scheduler {
	return &Scheduler{
		Cron:           cron.New(cron.WithSeconds()),
		Params:         params,
		NumSimulations: numSimulations,
		Seed:           seed,
		Store:          rec,
		Notifier:       n,
		Ctx:            ctx,
	}
}

// RegisterAll registers the recurring batch task on the given cron schedule.
func (s *Scheduler) RegisterAll(batchCron string) error {
	if _, err := s.Cron.AddFunc(batchCron, s.batchTask); err != nil {
		return fmt.Errorf("register batch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunBatchNow executes the batch task immediately, outside its cron
// schedule (manual trigger / run-on-start).
func (s *Scheduler) RunBatchNow() {
	s.batchTask()
}

func (s *Scheduler) batchTask() {
	log.Println("[INFO] running scheduled batch")

	resolvedSeed := time.Now().UnixMilli()
	if s.Seed != nil {
		resolvedSeed = *s.Seed
	}
	results := engine.RunMonteCarlo(s.Params, s.NumSimulations, &resolvedSeed)

	rec := store.FromResults(uuid.NewString(), resolvedSeed, time.Now(), results)
	if err := s.Store.RecordRun(rec); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}

	text := report.FormatBatch(&results)
	s.trySend(text)
}

func (s *Scheduler) trySend(text string) {
	type retrier interface {
		SendWithRetry(ctx context.Context, text string, maxRetries int) error
	}
	if r, ok := s.Notifier.(retrier); ok {
		if err := r.SendWithRetry(s.Ctx, text, 3); err != nil {
			log.Printf("[ERROR] send notification: %v", err)
		}
		return
	}
	if err := s.Notifier.Send(text); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
