package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"surveyflow/internal/platform/logger"
	"surveyflow/internal/services/surveys/domain"

	"golang.org/x/sync/errgroup"
)

// Worker defaults
const (
	DefaultMaxRetryAttempts = 5
	DefaultRetryDelay       = 2000 * time.Millisecond
	DefaultAttemptTimeout   = 30 * time.Second
)

// WorkerConfig controls retries and fan out
type WorkerConfig struct {
	MaxRetryAttempts int
	RetryDelay       time.Duration
	Consumers        int
	AttemptTimeout   time.Duration
}

// Normalize replaces out of range values with defaults
func (c WorkerConfig) Normalize() WorkerConfig {
	if c.MaxRetryAttempts < 1 {
		c.MaxRetryAttempts = DefaultMaxRetryAttempts
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.Consumers < 1 {
		c.Consumers = 1
	}
	if c.AttemptTimeout <= 0 {
		c.AttemptTimeout = DefaultAttemptTimeout
	}
	return c
}

// Worker drains the queue and retries failed items up to MaxRetryAttempts
type Worker struct {
	q       domain.Queue
	factory domain.ProcessorFactory
	cfg     WorkerConfig
	log     *logger.Logger

	// delayed requeues; joined before Run returns
	retries sync.WaitGroup

	processed atomic.Int64
	dropped   atomic.Int64
	lost      atomic.Int64
}

// NewWorker builds a worker; cfg is normalized
func NewWorker(q domain.Queue, factory domain.ProcessorFactory, cfg WorkerConfig, log *logger.Logger) *Worker {
	if log == nil {
		log = logger.Named("survey-worker")
	}
	return &Worker{q: q, factory: factory, cfg: cfg.Normalize(), log: log}
}

// Config returns the effective configuration
func (w *Worker) Config() WorkerConfig { return w.cfg }

// Processed counts items that completed successfully
func (w *Worker) Processed() int64 { return w.processed.Load() }

// Dropped counts items discarded after their last attempt
func (w *Worker) Dropped() int64 { return w.dropped.Load() }

// Lost counts items whose requeue failed during shutdown
func (w *Worker) Lost() int64 { return w.lost.Load() }

// Run starts Consumers loops over the queue and returns once ctx is done
func (w *Worker) Run(ctx context.Context) error {
	w.log.Info().
		Int("consumers", w.cfg.Consumers).
		Int("max_attempts", w.cfg.MaxRetryAttempts).
		Dur("retry_delay", w.cfg.RetryDelay).
		Msg("survey worker started")

	g, gctx := errgroup.WithContext(ctx)
	for range w.cfg.Consumers {
		g.Go(func() error {
			for item := range w.q.Drain(gctx) {
				w.handle(gctx, item)
			}
			return nil
		})
	}
	_ = g.Wait()
	w.retries.Wait()

	w.log.Info().Int64("processed", w.Processed()).Int64("dropped", w.Dropped()).Msg("survey worker stopped")
	return ctx.Err()
}

func (w *Worker) handle(ctx context.Context, item domain.QueueItem) {
	e := item.Event

	// an attempt that started finishes even when shutdown begins
	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.cfg.AttemptTimeout)
	err := w.factory().Process(actx, e)
	cancel()
	if err == nil {
		w.processed.Add(1)
		return
	}

	w.log.Error().Err(err).
		Str("response_id", e.ResponseID).
		Str("client_id", e.ClientID).
		Int("attempt", item.Attempt).
		Msg("survey response processing failed")

	if item.Attempt+1 >= w.cfg.MaxRetryAttempts {
		w.dropped.Add(1)
		logger.Critical(w.log).
			Err(domain.RetriesExhausted(e.ResponseID, item.Attempt+1, err)).
			Str("response_id", e.ResponseID).
			Str("client_id", e.ClientID).
			Int("attempts", item.Attempt+1).
			Msg("dropping survey response")
		return
	}

	// the consumer goes back to draining; a full queue only blocks the retry
	w.retries.Go(func() { w.retry(ctx, item) })
}

// retry waits out RetryDelay and puts item back on the queue
func (w *Worker) retry(ctx context.Context, item domain.QueueItem) {
	e := item.Event
	if w.cfg.RetryDelay > 0 {
		t := time.NewTimer(w.cfg.RetryDelay)
		select {
		case <-ctx.Done():
			t.Stop()
		case <-t.C:
		}
	}

	if err := w.q.Requeue(ctx, item); err != nil {
		w.lost.Add(1)
		w.log.Error().Err(err).
			Str("response_id", e.ResponseID).
			Int("attempt", item.Attempt).
			Msg("survey response lost during shutdown")
	}
}
