// internal/core/usecases/scheduler.go
package usecases

import (
	"context"
	"fmt"
	"time"

	"phoneprobe/internal/core/domain"
	"phoneprobe/internal/core/ports"
	"phoneprobe/internal/platform/logx"
	"phoneprobe/internal/platform/metrics"
	"phoneprobe/internal/platform/workerpool"
)

// DefaultWorkers número de categorías en paralelo por defecto.
const DefaultWorkers = 5

// Scheduler coordina la ejecución de todas las categorías del catálogo.
type Scheduler struct {
	catalog  ports.Catalog
	runner   *CategoryRunner
	pool     *workerpool.WorkerPool
	notifier ports.Notifier
	logger   logx.Logger
	metrics  *metrics.Recorder
	workers  int
}

// SchedulerOptions configura el scheduler.
type SchedulerOptions struct {
	Catalog  ports.Catalog
	Prober   URLProber
	Workers  int
	Strategy workerpool.Scheduler
	Notifier ports.Notifier
	Logger   logx.Logger
	Metrics  *metrics.Recorder
}

// NewScheduler crea un nuevo scheduler.
func NewScheduler(opts SchedulerOptions) (*Scheduler, error) {
	if opts.Catalog == nil || len(opts.Catalog.Categories()) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	if opts.Prober == nil {
		return nil, domain.ErrNoTransport
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = logx.NewNop()
	}

	runner := NewCategoryRunner(CategoryRunnerOptions{
		Prober:   opts.Prober,
		Notifier: opts.Notifier,
		Logger:   opts.Logger,
		Metrics:  opts.Metrics,
	})

	pool := workerpool.NewWorkerPool(workerpool.WorkerPoolConfig{
		Workers:   opts.Workers,
		Scheduler: opts.Strategy,
		Logger:    opts.Logger,
	})

	return &Scheduler{
		catalog:  opts.Catalog,
		runner:   runner,
		pool:     pool,
		notifier: opts.Notifier,
		logger:   opts.Logger.With("component", "scheduler"),
		metrics:  opts.Metrics,
		workers:  opts.Workers,
	}, nil
}

// RunAll prueba el identificador contra todo el catálogo.
// Siempre retorna un reporte bien formado; si ctx se canceló el error
// envuelve domain.ErrRunCanceled y el reporte es parcial.
func (s *Scheduler) RunAll(ctx context.Context, id domain.Identifier) (*domain.Report, error) {
	if id == "" {
		return nil, domain.ErrEmptyIdentifier
	}

	meta := domain.NewRunMeta(id)
	ctx = withRunID(ctx, meta.ID)

	names := s.catalog.Categories()
	order := make([]CategoryRef, len(names))
	tasks := make([]workerpool.Task, len(names))
	categoryTasks := make([]*CategoryTask, len(names))
	totalTargets := 0

	for i, name := range names {
		targets := s.catalog.Targets(name)
		title := s.catalog.Title(name)
		order[i] = CategoryRef{Name: name, Title: title, Expected: len(targets)}
		ct := NewCategoryTask(s.runner, name, title, targets, id)
		categoryTasks[i] = ct
		tasks[i] = ct
		totalTargets += len(targets)
	}

	s.logger.Info("starting run",
		"run_id", meta.ID,
		"identifier", id.String(),
		"categories", len(names),
		"targets", totalTargets,
		"workers", s.workers,
	)

	notify(ctx, s.notifier, s.logger, ports.NewEvent(
		ports.EventTypeRunStarted,
		meta.ID,
		"",
		ports.RunStartedEvent{
			Identifier: id,
			Categories: names,
			Targets:    totalTargets,
			Workers:    s.workers,
		},
	))

	taskResults := s.pool.Submit(ctx, tasks)

	results := make([]domain.CategoryResult, 0, len(taskResults))
	for _, tr := range taskResults {
		ct := categoryTasks[tr.Index]
		r := s.collect(ctx, ct, tr)
		s.metrics.ObserveCategory(r.State.String())
		results = append(results, r)
	}

	meta.FinishedAt = time.Now()
	meta.Canceled = ctx.Err() != nil

	report := Aggregate(meta, order, results)
	s.metrics.ObserveRun(report.Duration)

	s.logger.Info("run completed",
		"run_id", report.ID,
		"checked", report.Summary.Checked,
		"found", report.Summary.Found,
		"unreachable", report.Summary.Unreachable,
		"failed", report.Summary.Failed,
		"not_attempted", report.Summary.NotAttempted,
		"canceled", report.Canceled,
		"duration_ms", report.Duration.Milliseconds(),
	)

	notify(ctx, s.notifier, s.logger, ports.NewEvent(
		ports.EventTypeRunCompleted,
		meta.ID,
		"",
		ports.RunCompletedEvent{Report: report},
	))

	if report.Canceled {
		return report, fmt.Errorf("%w: %w", domain.ErrRunCanceled, context.Cause(ctx))
	}
	return report, nil
}

// collect traduce el resultado del pool a un CategoryResult.
func (s *Scheduler) collect(ctx context.Context, ct *CategoryTask, tr workerpool.TaskResult) domain.CategoryResult {
	var marker domain.CategoryResult

	switch {
	case tr.Skipped:
		marker = domain.NewNotAttemptedCategory(ct.Name(), ct.Title(), ct.Expected())

	case tr.Panicked:
		err := fmt.Errorf("category %s: %w: %w", ct.Name(), domain.ErrCategoryPanic, tr.Error)
		s.logger.Warn("category task panicked", "category", ct.Name(), "error", err.Error())
		marker = domain.NewFailedCategory(ct.Name(), ct.Title(), ct.Expected(), err)

	case tr.Error != nil:
		err := fmt.Errorf("category %s: %w: %w", ct.Name(), domain.ErrCategoryFailed, tr.Error)
		s.logger.Warn("category task failed", "category", ct.Name(), "error", err.Error())
		marker = domain.NewFailedCategory(ct.Name(), ct.Title(), ct.Expected(), err)

	default:
		if r, ok := ct.Result(); ok {
			return r
		}
		err := fmt.Errorf("category %s: %w: no result", ct.Name(), domain.ErrCategoryFailed)
		marker = domain.NewFailedCategory(ct.Name(), ct.Title(), ct.Expected(), err)
	}

	marker.Duration = tr.Duration
	notify(ctx, s.notifier, s.logger, ports.NewEvent(
		ports.EventTypeCategoryCompleted,
		runIDFrom(ctx),
		ct.Name(),
		ports.CategoryCompletedEvent{Result: marker},
	))
	return marker
}

// PoolStats retorna las estadísticas del worker pool.
func (s *Scheduler) PoolStats() workerpool.WorkerPoolStats {
	return s.pool.Stats()
}
