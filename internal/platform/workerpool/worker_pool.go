// internal/platform/workerpool/worker_pool.go
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"phoneprobe/internal/platform/logx"
)

// ErrTaskPanic envuelve el valor de un panic recuperado dentro de una tarea.
var ErrTaskPanic = errors.New("task panicked")

// Task representa una tarea a ejecutar en el worker pool.
type Task interface {
	// Execute ejecuta la tarea
	Execute(ctx context.Context) error

	// Weight retorna el costo estimado de la tarea (p.ej. número de requests)
	Weight() int

	// Name retorna el nombre de la tarea
	Name() string
}

// Scheduler define el orden en que se despachan las tareas.
type Scheduler interface {
	// Schedule ordena las tareas según la estrategia
	Schedule(tasks []Task) []Task

	// Name retorna el nombre del scheduler
	Name() string
}

// WorkerPool ejecuta tareas con un límite de concurrencia fijo.
// Los fallos de una tarea nunca cancelan a las demás.
type WorkerPool struct {
	workers   int
	scheduler Scheduler
	logger    logx.Logger

	mu    sync.Mutex
	stats WorkerPoolStats
}

// TaskResult representa el resultado de una tarea.
type TaskResult struct {
	Task     Task
	Index    int // posición en el slice pasado a Submit
	Error    error
	Duration time.Duration
	Skipped  bool // nunca arrancó porque el contexto ya estaba cancelado
	Panicked bool
}

// WorkerPoolConfig configura el worker pool.
type WorkerPoolConfig struct {
	Workers   int
	Scheduler Scheduler
	Logger    logx.Logger
}

// NewWorkerPool crea un nuevo worker pool.
func NewWorkerPool(cfg WorkerPoolConfig) *WorkerPool {
	if cfg.Workers <= 0 {
		cfg.Workers = 5
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = NewFIFOScheduler()
	}
	if cfg.Logger == nil {
		cfg.Logger = logx.New()
	}

	return &WorkerPool{
		workers:   cfg.Workers,
		scheduler: cfg.Scheduler,
		logger:    cfg.Logger.With("component", "worker-pool"),
		stats: WorkerPoolStats{
			Workers:       cfg.Workers,
			SchedulerName: cfg.Scheduler.Name(),
		},
	}
}

// Submit ejecuta todas las tareas y espera a que terminen.
// El resultado está alineado por índice con tasks, sin importar el
// orden de despacho del scheduler. Las tareas que se despachan después
// de cancelar ctx no se ejecutan y vuelven con Skipped=true.
func (wp *WorkerPool) Submit(ctx context.Context, tasks []Task) []TaskResult {
	if len(tasks) == 0 {
		return []TaskResult{}
	}

	wrapped := make([]Task, len(tasks))
	for i, t := range tasks {
		wrapped[i] = &indexedTask{Task: t, index: i}
	}

	scheduled := wp.scheduler.Schedule(wrapped)

	wp.logger.Debug("submitting tasks",
		"total", len(scheduled),
		"workers", wp.workers,
		"scheduler", wp.scheduler.Name(),
	)

	results := make([]TaskResult, len(tasks))
	var inFlight, peak atomic.Int64

	var g errgroup.Group
	g.SetLimit(wp.workers)

	for _, t := range scheduled {
		it := t.(*indexedTask)
		i, task := it.index, it.Task
		results[i] = TaskResult{Task: task, Index: i}

		if ctx.Err() != nil {
			results[i].Skipped = true
			continue
		}

		g.Go(func() error {
			// El slot puede liberarse después de la cancelación.
			if ctx.Err() != nil {
				results[i].Skipped = true
				return nil
			}

			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			defer inFlight.Add(-1)

			results[i] = wp.executeTask(ctx, i, task)
			return nil
		})
	}

	_ = g.Wait()

	wp.record(results, int(peak.Load()))
	return results
}

// indexedTask recuerda la posición original de una tarea a través del scheduler.
type indexedTask struct {
	Task
	index int
}

// executeTask ejecuta una tarea individual recuperando panics.
func (wp *WorkerPool) executeTask(ctx context.Context, i int, task Task) (res TaskResult) {
	start := time.Now()
	res = TaskResult{Task: task, Index: i}

	wp.logger.Debug("executing task",
		"task", task.Name(),
		"weight", task.Weight(),
	)

	defer func() {
		res.Duration = time.Since(start)
		if r := recover(); r != nil {
			res.Panicked = true
			res.Error = fmt.Errorf("%w: %s: %v", ErrTaskPanic, task.Name(), r)
			wp.logger.Warn("task panicked",
				"task", task.Name(),
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			return
		}
		wp.logger.Debug("task completed",
			"task", task.Name(),
			"duration_ms", res.Duration.Milliseconds(),
			"error", res.Error != nil,
		)
	}()

	res.Error = task.Execute(ctx)
	return res
}

func (wp *WorkerPool) record(results []TaskResult, peak int) {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	wp.stats.Submitted += len(results)
	for _, r := range results {
		switch {
		case r.Skipped:
			wp.stats.Skipped++
		case r.Panicked:
			wp.stats.Executed++
			wp.stats.Panicked++
			wp.stats.Failed++
		case r.Error != nil:
			wp.stats.Executed++
			wp.stats.Failed++
		default:
			wp.stats.Executed++
		}
	}
	if peak > wp.stats.PeakInFlight {
		wp.stats.PeakInFlight = peak
	}
}

// Stats retorna estadísticas acumuladas del worker pool.
func (wp *WorkerPool) Stats() WorkerPoolStats {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	return wp.stats
}

// WorkerPoolStats contiene estadísticas del worker pool.
type WorkerPoolStats struct {
	Workers       int
	SchedulerName string
	Submitted     int
	Executed      int
	Skipped       int
	Failed        int
	Panicked      int
	PeakInFlight  int
}
