// internal/core/usecases/category_task.go
package usecases

import (
	"context"

	"phoneprobe/internal/core/domain"
	"phoneprobe/internal/core/ports"
	"phoneprobe/internal/platform/logx"
)

// CategoryTask adapta una categoría del catálogo a workerpool.Task.
type CategoryTask struct {
	runner   *CategoryRunner
	notifier ports.Notifier
	logger   logx.Logger

	category string
	title    string
	targets  []domain.Target
	id       domain.Identifier

	// Result storage, solo válido si Execute retornó sin panic
	result domain.CategoryResult
	done   bool
}

// NewCategoryTask crea una nueva CategoryTask.
func NewCategoryTask(runner *CategoryRunner, category, title string, targets []domain.Target, id domain.Identifier) *CategoryTask {
	return &CategoryTask{
		runner:   runner,
		notifier: runner.notifier,
		logger:   runner.logger,
		category: category,
		title:    title,
		targets:  targets,
		id:       id,
	}
}

// Execute prueba la categoría completa.
func (ct *CategoryTask) Execute(ctx context.Context) error {
	runID := runIDFrom(ctx)

	notify(ctx, ct.notifier, ct.logger, ports.NewEvent(
		ports.EventTypeCategoryStarted,
		runID,
		ct.category,
		ports.CategoryStartedEvent{Title: ct.title, Targets: len(ct.targets)},
	))

	result := ct.runner.Run(ctx, ct.category, ct.targets, ct.id)
	result.Title = ct.title
	ct.result = result
	ct.done = true

	notify(ctx, ct.notifier, ct.logger, ports.NewEvent(
		ports.EventTypeCategoryCompleted,
		runID,
		ct.category,
		ports.CategoryCompletedEvent{Result: result},
	))
	return nil
}

// Weight retorna el número de targets de la categoría.
func (ct *CategoryTask) Weight() int {
	return len(ct.targets)
}

// Name retorna el nombre de la categoría.
func (ct *CategoryTask) Name() string {
	return ct.category
}

// Title retorna el nombre legible de la categoría.
func (ct *CategoryTask) Title() string {
	return ct.title
}

// Expected retorna cuántos targets tiene la categoría.
func (ct *CategoryTask) Expected() int {
	return len(ct.targets)
}

// Result retorna el resultado y si la tarea terminó.
func (ct *CategoryTask) Result() (domain.CategoryResult, bool) {
	return ct.result, ct.done
}
