// internal/core/ports/notifier.go
package ports

import (
	"context"
	"time"

	"phoneprobe/internal/core/domain"
)

// Notifier es el port para observar el progreso de una ejecución.
// Se invoca de forma síncrona desde la goroutine que produce el evento,
// por lo que las implementaciones deben ser seguras para uso concurrente
// y no bloquear.
type Notifier interface {
	// Notify recibe un evento
	Notify(ctx context.Context, event Event) error

	// Close cierra el notifier y libera recursos
	Close() error
}

// Event representa un evento de la ejecución.
type Event struct {
	// Type tipo de evento
	Type EventType

	// Timestamp momento del evento
	Timestamp time.Time

	// RunID ejecución a la que pertenece
	RunID string

	// Category categoría relacionada (vacío para eventos de run)
	Category string

	// Data datos específicos del evento
	Data interface{}
}

// EventType define los tipos de eventos.
type EventType string

const (
	EventTypeRunStarted        EventType = "run.started"
	EventTypeRunCompleted      EventType = "run.completed"
	EventTypeCategoryStarted   EventType = "category.started"
	EventTypeCategoryCompleted EventType = "category.completed"
	EventTypeProbeCompleted    EventType = "probe.completed"
)

// NewEvent crea un nuevo evento.
func NewEvent(eventType EventType, runID, category string, data interface{}) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		RunID:     runID,
		Category:  category,
		Data:      data,
	}
}

// RunStartedEvent datos para el inicio de una ejecución.
type RunStartedEvent struct {
	Identifier domain.Identifier
	Categories []string
	Targets    int
	Workers    int
}

// CategoryStartedEvent datos para el inicio de una categoría.
type CategoryStartedEvent struct {
	Title   string
	Targets int
}

// ProbeCompletedEvent datos para un outcome registrado.
type ProbeCompletedEvent struct {
	Outcome domain.Outcome
}

// CategoryCompletedEvent datos para el fin de una categoría.
type CategoryCompletedEvent struct {
	Result domain.CategoryResult
}

// RunCompletedEvent datos para el fin de una ejecución.
type RunCompletedEvent struct {
	Report *domain.Report
}

// MultiNotifier reparte cada evento entre varios notifiers.
type MultiNotifier []Notifier

// Notify envía el evento a todos; retorna el primer error.
func (m MultiNotifier) Notify(ctx context.Context, event Event) error {
	var first error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, event); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Close cierra todos los notifiers; retorna el primer error.
func (m MultiNotifier) Close() error {
	var first error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
