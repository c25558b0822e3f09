// internal/core/domain/report.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Report es el resultado agregado de una ejecución completa.
type Report struct {
	// ID identificador único de la ejecución
	ID string `json:"id" yaml:"id"`

	// Identifier valor probado
	Identifier Identifier `json:"identifier" yaml:"identifier"`

	// StartedAt momento de inicio
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// FinishedAt momento de finalización
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	// Duration duración total
	Duration time.Duration `json:"duration_ns" yaml:"duration"`

	// Canceled indica si la ejecución fue cancelada
	Canceled bool `json:"canceled" yaml:"canceled"`

	// Categories resultados por categoría, en orden de catálogo
	Categories []CategoryResult `json:"categories" yaml:"categories"`

	// Summary contadores derivados de Categories
	Summary Summary `json:"summary" yaml:"summary"`
}

// Summary contiene los contadores agregados del reporte.
type Summary struct {
	Checked      int `json:"total_checked" yaml:"total_checked"`
	Found        int `json:"found" yaml:"found"`
	NotFound     int `json:"not_found" yaml:"not_found"`
	Unreachable  int `json:"unreachable" yaml:"unreachable"`
	Categories   int `json:"categories" yaml:"categories"`
	Completed    int `json:"completed" yaml:"completed"`
	Partial      int `json:"partial" yaml:"partial"`
	Failed       int `json:"failed" yaml:"failed"`
	NotAttempted int `json:"not_attempted" yaml:"not_attempted"`
}

// RunMeta datos de la ejecución que el agregador copia al reporte.
type RunMeta struct {
	ID         string
	Identifier Identifier
	StartedAt  time.Time
	FinishedAt time.Time
	Canceled   bool
}

// NewRunMeta crea metadatos con un ID nuevo y hora de inicio actual.
func NewRunMeta(id Identifier) RunMeta {
	return RunMeta{
		ID:         generateRunID(),
		Identifier: id,
		StartedAt:  time.Now(),
	}
}

// Compute recalcula los contadores a partir de las categorías.
func Compute(categories []CategoryResult) Summary {
	var s Summary
	s.Categories = len(categories)
	for _, c := range categories {
		switch c.State {
		case CategoryCompleted:
			s.Completed++
		case CategoryPartial:
			s.Partial++
		case CategoryFailed:
			s.Failed++
		case CategoryNotAttempted:
			s.NotAttempted++
		}
		for _, o := range c.Outcomes {
			s.Checked++
			switch o.Status {
			case OutcomeFound:
				s.Found++
			case OutcomeNotFound:
				s.NotFound++
			case OutcomeUnreachable:
				s.Unreachable++
			}
		}
	}
	return s
}

// Category busca el resultado de una categoría.
func (r *Report) Category(name string) (CategoryResult, bool) {
	for _, c := range r.Categories {
		if c.Category == name {
			return c, true
		}
	}
	return CategoryResult{}, false
}

// Lookup busca el outcome de una fuente dentro de una categoría.
func (r *Report) Lookup(category, source string) (Outcome, bool) {
	c, ok := r.Category(category)
	if !ok {
		return Outcome{}, false
	}
	return c.Outcome(source)
}

// FoundOutcomes retorna los outcomes found de todas las categorías, en orden.
func (r *Report) FoundOutcomes() []Outcome {
	var out []Outcome
	for _, c := range r.Categories {
		for _, o := range c.Outcomes {
			if o.Found {
				out = append(out, o)
			}
		}
	}
	return out
}

// Complete indica si todas las categorías terminaron sin marcador ni parcialidad.
func (r *Report) Complete() bool {
	return !r.Canceled && r.Summary.Completed == r.Summary.Categories
}

// String retorna un resumen legible del reporte.
func (r *Report) String() string {
	return fmt.Sprintf(
		"Report{identifier=%s, checked=%d, found=%d, unreachable=%d, failed=%d, not_attempted=%d, duration=%s}",
		r.Identifier,
		r.Summary.Checked,
		r.Summary.Found,
		r.Summary.Unreachable,
		r.Summary.Failed,
		r.Summary.NotAttempted,
		r.Duration,
	)
}

// generateRunID genera un ID único para la ejecución.
func generateRunID() string {
	return "run-" + uuid.NewString()
}
