// internal/core/domain/category_result.go
package domain

import "time"

// CategoryResult agrupa los outcomes de una categoría en orden de catálogo.
type CategoryResult struct {
	// Category nombre de la categoría
	Category string `json:"category" yaml:"category"`

	// Title nombre legible
	Title string `json:"title" yaml:"title"`

	// State cómo terminó la tarea
	State CategoryState `json:"state" yaml:"state"`

	// Outcomes uno por target probado, en orden de catálogo
	Outcomes []Outcome `json:"outcomes" yaml:"outcomes"`

	// Expected número de targets que tiene la categoría en el catálogo
	Expected int `json:"expected" yaml:"expected"`

	// Error motivo del marcador (failed, not_attempted) o de la parcialidad
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Duration tiempo de ejecución de la tarea
	Duration time.Duration `json:"duration_ns" yaml:"duration"`
}

// NewFailedCategory crea el marcador de categoría fallida.
func NewFailedCategory(category, title string, expected int, err error) CategoryResult {
	r := CategoryResult{
		Category: category,
		Title:    title,
		State:    CategoryFailed,
		Outcomes: []Outcome{},
		Expected: expected,
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// NewNotAttemptedCategory crea el marcador de categoría nunca iniciada.
func NewNotAttemptedCategory(category, title string, expected int) CategoryResult {
	return CategoryResult{
		Category: category,
		Title:    title,
		State:    CategoryNotAttempted,
		Outcomes: []Outcome{},
		Expected: expected,
		Error:    ErrNotAttempted.Error(),
	}
}

// Size retorna el número de outcomes registrados.
func (c CategoryResult) Size() int {
	return len(c.Outcomes)
}

// FoundCount retorna cuántos outcomes son found.
func (c CategoryResult) FoundCount() int {
	n := 0
	for _, o := range c.Outcomes {
		if o.Found {
			n++
		}
	}
	return n
}

// Outcome busca el outcome de una fuente.
func (c CategoryResult) Outcome(source string) (Outcome, bool) {
	for _, o := range c.Outcomes {
		if o.Source == source {
			return o, true
		}
	}
	return Outcome{}, false
}
