// Package service implements the survey ingestion pipeline: processing, retries,
// warm-up, insights refresh and health reporting
package service

import (
	"context"
	"time"

	"surveyflow/internal/core/secure"
	"surveyflow/internal/modkit"
	"surveyflow/internal/modkit/repokit"
	perr "surveyflow/internal/platform/errors"
	"surveyflow/internal/services/surveys/domain"
	"surveyflow/internal/services/surveys/faststore"
	"surveyflow/internal/services/surveys/insights"
	"surveyflow/internal/services/surveys/metrics"
	"surveyflow/internal/services/surveys/queue"
	srepo "surveyflow/internal/services/surveys/repo"
)

// Config controls the pipeline
type Config struct {
	QueueCapacity    int
	Worker           WorkerConfig
	InsightsInterval time.Duration
	HealthInterval   time.Duration
	EncryptionKey    string
	EncryptionIV     string
}

// Svc owns the pipeline parts and the background tasks that drive them
type Svc struct {
	deps modkit.Deps
	cfg  Config
	repo srepo.Repo

	Queue     *queue.Queue
	Fast      *faststore.Store
	Metrics   *metrics.Accumulator
	Insights  *insights.Cache
	Refresher *insights.Refresher
	Worker    *Worker
	Health    *HealthMonitor
}

var _ domain.Enqueuer = (*Svc)(nil)

// New builds the pipeline on deps.PG with an AES encryptor from cfg
func New(deps modkit.Deps, cfg Config) (*Svc, error) {
	if !deps.HasPG() {
		return nil, perr.New(perr.ErrorCodeUnavailable, "surveys: postgres is required")
	}
	enc, err := secure.NewAES(cfg.EncryptionKey, cfg.EncryptionIV)
	if err != nil {
		return nil, err
	}
	return Assemble(deps, cfg, enc, repokit.MustBind(srepo.NewPG(), deps.PG)), nil
}

// Assemble wires the pipeline around the given encryptor and repository
func Assemble(deps modkit.Deps, cfg Config, enc domain.Encryptor, r srepo.Repo) *Svc {
	s := &Svc{
		deps:     deps,
		cfg:      cfg,
		repo:     r,
		Queue:    queue.New(cfg.QueueCapacity),
		Fast:     faststore.New(),
		Metrics:  metrics.New(),
		Insights: insights.NewCache(),
	}

	workerLog := deps.Named("survey-worker").Log
	refreshLog := deps.Named("insights-refresher").Log
	healthLog := deps.Named("health-monitor").Log

	s.Worker = NewWorker(s.Queue, NewProcessorFactory(enc, r, s.Fast, s.Metrics), cfg.Worker, &workerLog)
	s.Refresher = insights.NewRefresher(s.Fast, s.Insights, cfg.InsightsInterval, &refreshLog)
	s.Health = NewHealthMonitor(cfg.HealthInterval, &healthLog, DatabaseCheck(r), QueueCheck(s.Queue))
	return s
}

// Start bootstraps the schema then warms the fast store
func (s *Svc) Start(ctx context.Context) error {
	if err := s.repo.EnsureSchema(ctx); err != nil {
		return err
	}
	log := s.deps.Named("warmup").Log
	WarmUp(ctx, s.repo, s.Fast, &log)
	return nil
}

// Stop rejects further submissions
func (s *Svc) Stop() { s.Queue.Close() }

// Enqueue hands a validated event to the worker
func (s *Svc) Enqueue(ctx context.Context, e domain.Event) error { return s.Queue.Enqueue(ctx, e) }

// Tasks lists the long running loops for the process supervisor
func (s *Svc) Tasks() []modkit.Task {
	return []modkit.Task{
		{Name: "survey-worker", Run: s.Worker.Run},
		{Name: "insights-refresher", Run: s.Refresher.Run},
		{Name: "health-monitor", Run: s.Health.Run},
	}
}
