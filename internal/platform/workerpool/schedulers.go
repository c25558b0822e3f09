// internal/platform/workerpool/schedulers.go
package workerpool

import (
	"fmt"
	"sort"
)

// WeightedScheduler despacha primero las tareas más pesadas.
// Con categorías secuenciales esto acorta el tiempo total: la categoría
// más larga arranca en el primer slot libre.
type WeightedScheduler struct{}

// NewWeightedScheduler crea un scheduler basado en peso.
func NewWeightedScheduler() *WeightedScheduler {
	return &WeightedScheduler{}
}

// Schedule ordena por peso descendente; empates conservan el orden original.
func (s *WeightedScheduler) Schedule(tasks []Task) []Task {
	scheduled := make([]Task, len(tasks))
	copy(scheduled, tasks)

	sort.SliceStable(scheduled, func(i, j int) bool {
		return scheduled[i].Weight() > scheduled[j].Weight()
	})

	return scheduled
}

// Name retorna el nombre del scheduler.
func (s *WeightedScheduler) Name() string {
	return "weighted"
}

// FIFOScheduler no reordena (First In First Out).
type FIFOScheduler struct{}

// NewFIFOScheduler crea un scheduler FIFO.
func NewFIFOScheduler() *FIFOScheduler {
	return &FIFOScheduler{}
}

// Schedule retorna tasks en el orden original.
func (s *FIFOScheduler) Schedule(tasks []Task) []Task {
	scheduled := make([]Task, len(tasks))
	copy(scheduled, tasks)
	return scheduled
}

// Name retorna el nombre del scheduler.
func (s *FIFOScheduler) Name() string {
	return "fifo"
}

// SchedulerByName resuelve un scheduler a partir de su nombre de configuración.
func SchedulerByName(name string) (Scheduler, error) {
	switch name {
	case "", "fifo":
		return NewFIFOScheduler(), nil
	case "weighted":
		return NewWeightedScheduler(), nil
	default:
		return nil, fmt.Errorf("unknown scheduler %q", name)
	}
}
