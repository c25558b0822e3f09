// internal/core/domain/enums.go
package domain

// OutcomeStatus clasifica el resultado final de un probe.
type OutcomeStatus string

const (
	// OutcomeFound el endpoint respondió con HTTP 200
	OutcomeFound OutcomeStatus = "found"

	// OutcomeNotFound el endpoint respondió con cualquier otro código
	OutcomeNotFound OutcomeStatus = "not_found"

	// OutcomeUnreachable ningún intento obtuvo respuesta
	OutcomeUnreachable OutcomeStatus = "unreachable"
)

// IsValid verifica si el estado es válido.
func (s OutcomeStatus) IsValid() bool {
	switch s {
	case OutcomeFound, OutcomeNotFound, OutcomeUnreachable:
		return true
	default:
		return false
	}
}

// String retorna la representación string del estado.
func (s OutcomeStatus) String() string {
	return string(s)
}

// CategoryState describe cómo terminó la tarea de una categoría.
type CategoryState string

const (
	// CategoryCompleted todos los targets de la categoría fueron probados
	CategoryCompleted CategoryState = "completed"

	// CategoryPartial la tarea se detuvo por cancelación antes de terminar
	CategoryPartial CategoryState = "partial"

	// CategoryFailed la tarea falló por completo (error o panic)
	CategoryFailed CategoryState = "failed"

	// CategoryNotAttempted la tarea nunca arrancó
	CategoryNotAttempted CategoryState = "not_attempted"
)

// IsValid verifica si el estado es válido.
func (s CategoryState) IsValid() bool {
	switch s {
	case CategoryCompleted, CategoryPartial, CategoryFailed, CategoryNotAttempted:
		return true
	default:
		return false
	}
}

// IsMarker indica si el estado es un marcador sin outcomes.
func (s CategoryState) IsMarker() bool {
	return s == CategoryFailed || s == CategoryNotAttempted
}

// String retorna la representación string del estado.
func (s CategoryState) String() string {
	return string(s)
}

// FailureKind clasifica por qué un probe terminó unreachable.
type FailureKind string

const (
	FailureNone       FailureKind = ""
	FailureTimeout    FailureKind = "timeout"
	FailureDNS        FailureKind = "dns"
	FailureConnection FailureKind = "connection"
	FailureTLS        FailureKind = "tls"
	FailureProtocol   FailureKind = "protocol"
	FailureCanceled   FailureKind = "canceled"
	FailureRateLimit  FailureKind = "rate_limit"
	FailureInternal   FailureKind = "internal"
	FailureUnknown    FailureKind = "unknown"
)

// String retorna la representación string del tipo de fallo.
func (k FailureKind) String() string {
	return string(k)
}
