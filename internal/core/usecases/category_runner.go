// internal/core/usecases/category_runner.go
package usecases

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"phoneprobe/internal/core/domain"
	"phoneprobe/internal/core/ports"
	"phoneprobe/internal/platform/logx"
	"phoneprobe/internal/platform/metrics"
)

// CategoryRunner prueba los targets de una categoría uno tras otro.
type CategoryRunner struct {
	prober   URLProber
	notifier ports.Notifier
	logger   logx.Logger
	metrics  *metrics.Recorder
}

// CategoryRunnerOptions configura el runner.
type CategoryRunnerOptions struct {
	Prober   URLProber
	Notifier ports.Notifier
	Logger   logx.Logger
	Metrics  *metrics.Recorder
}

// NewCategoryRunner crea un runner.
func NewCategoryRunner(opts CategoryRunnerOptions) *CategoryRunner {
	if opts.Logger == nil {
		opts.Logger = logx.NewNop()
	}
	return &CategoryRunner{
		prober:   opts.Prober,
		notifier: opts.Notifier,
		logger:   opts.Logger.With("component", "category-runner"),
		metrics:  opts.Metrics,
	}
}

// Run prueba cada target en orden de catálogo.
// Nunca retorna error: los fallos de un probe quedan como unreachable y la
// cancelación deja State=partial con los outcomes reunidos hasta entonces.
func (r *CategoryRunner) Run(ctx context.Context, category string, targets []domain.Target, id domain.Identifier) domain.CategoryResult {
	start := time.Now()
	result := domain.CategoryResult{
		Category: category,
		State:    domain.CategoryCompleted,
		Outcomes: make([]domain.Outcome, 0, len(targets)),
		Expected: len(targets),
	}

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			r.markPartial(&result, err)
			break
		}

		url := target.Resolve(id)
		outcome, err := r.probe(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				r.markPartial(&result, err)
				break
			}
			// Error inesperado del prober: se registra y se sigue.
			r.logger.Warn("probe failed",
				"category", category,
				"source", target.Source,
				"error", err.Error(),
			)
			outcome = domain.NewUnreachableOutcome("", url, 0, domain.FailureInternal, err)
		}
		outcome.Source = target.Source
		outcome.Site = target.Site()

		result.Outcomes = append(result.Outcomes, outcome)
		r.metrics.ObserveOutcome(category, outcome.Status.String())
		notify(ctx, r.notifier, r.logger, ports.NewEvent(
			ports.EventTypeProbeCompleted,
			runIDFrom(ctx),
			category,
			ports.ProbeCompletedEvent{Outcome: outcome},
		))
	}

	result.Duration = time.Since(start)
	r.logger.Debug("category finished",
		"category", category,
		"state", result.State,
		"outcomes", len(result.Outcomes),
		"found", result.FoundCount(),
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result
}

// probe llama al prober convirtiendo un panic en error.
func (r *CategoryRunner) probe(ctx context.Context, url string) (outcome domain.Outcome, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", domain.ErrProbePanic, rec)
			r.logger.Warn("probe panicked",
				"url", url,
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
			)
		}
	}()
	return r.prober.Probe(ctx, url)
}

func (r *CategoryRunner) markPartial(result *domain.CategoryResult, err error) {
	result.State = domain.CategoryPartial
	result.Error = err.Error()
	r.logger.Info("category interrupted",
		"category", result.Category,
		"probed", len(result.Outcomes),
		"expected", result.Expected,
	)
}

type runIDKey struct{}

// withRunID asocia el ID de la ejecución al contexto para los eventos.
func withRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

func runIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// notify entrega un evento; los errores del notifier se registran y se ignoran.
func notify(ctx context.Context, n ports.Notifier, logger logx.Logger, event ports.Event) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, event); err != nil {
		logger.Warn("notifier error",
			"event", string(event.Type),
			"error", err.Error(),
		)
	}
}
