// internal/core/domain/outcome.go
package domain

import "time"

// StatusFound es el único código que cuenta como hallazgo.
const StatusFound = 200

// AttemptResult es el resultado de un único intento de transporte.
// O bien hay respuesta (StatusCode > 0) o bien hay error de transporte.
type AttemptResult struct {
	StatusCode int
	Err        error
	Duration   time.Duration
}

// Response crea un intento completado con el código recibido.
func Response(status int) AttemptResult {
	return AttemptResult{StatusCode: status}
}

// TransportError crea un intento fallido.
func TransportError(err error) AttemptResult {
	return AttemptResult{Err: err}
}

// Completed indica si el intento obtuvo una respuesta HTTP.
func (a AttemptResult) Completed() bool {
	return a.Err == nil
}

// Outcome es el resultado final de probar un target.
type Outcome struct {
	// Source nombre de la fuente
	Source string `json:"source" yaml:"source"`

	// Site dominio registrable de la URL, vacío para esquemas no web
	Site string `json:"site,omitempty" yaml:"site,omitempty"`

	// URL url resuelta que se probó
	URL string `json:"url" yaml:"url"`

	// StatusCode último código recibido, 0 si unreachable
	StatusCode int `json:"status" yaml:"status"`

	// Status clasificación tri-estado
	Status OutcomeStatus `json:"outcome" yaml:"outcome"`

	// Found true sii StatusCode == 200
	Found bool `json:"found" yaml:"found"`

	// Attempts número de intentos realizados
	Attempts int `json:"attempts" yaml:"attempts"`

	// FailureKind causa del fallo cuando Status es unreachable
	FailureKind FailureKind `json:"failure_kind,omitempty" yaml:"failure_kind,omitempty"`

	// Error último mensaje de error de transporte
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Duration tiempo total incluyendo reintentos
	Duration time.Duration `json:"duration_ns" yaml:"duration"`
}

// NewResponseOutcome construye el outcome de un intento completado.
func NewResponseOutcome(source, url string, status, attempts int) Outcome {
	o := Outcome{
		Source:     source,
		URL:        url,
		StatusCode: status,
		Attempts:   attempts,
		Found:      status == StatusFound,
		Status:     OutcomeNotFound,
	}
	if o.Found {
		o.Status = OutcomeFound
	}
	return o
}

// NewUnreachableOutcome construye el outcome cuando todos los intentos fallaron.
func NewUnreachableOutcome(source, url string, attempts int, kind FailureKind, err error) Outcome {
	o := Outcome{
		Source:      source,
		URL:         url,
		StatusCode:  0,
		Status:      OutcomeUnreachable,
		Attempts:    attempts,
		FailureKind: kind,
	}
	if err != nil {
		o.Error = err.Error()
	}
	return o
}

// Reachable indica si el endpoint respondió.
func (o Outcome) Reachable() bool {
	return o.Status != OutcomeUnreachable
}
