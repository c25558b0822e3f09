// internal/platform/ui/symbols.go
package ui

import (
	"github.com/pterm/pterm"

	"phoneprobe/internal/core/domain"
)

// Status representa el estado visual de un outcome o categoría
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusSuccess
	StatusWarning
	StatusError
	StatusSkipped
)

// String convierte el status a string
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Symbol retorna el símbolo Unicode para cada estado
func (s Status) Symbol() string {
	switch s {
	case StatusPending:
		return "⏸"
	case StatusRunning:
		return "⣾"
	case StatusSuccess:
		return "✓"
	case StatusWarning:
		return "⚠"
	case StatusError:
		return "✗"
	case StatusSkipped:
		return "⊘"
	default:
		return "?"
	}
}

// Color retorna el color pterm para cada estado
func (s Status) Color() pterm.Color {
	switch s {
	case StatusPending, StatusSkipped:
		return pterm.FgGray
	case StatusRunning:
		return pterm.FgCyan
	case StatusSuccess:
		return pterm.FgGreen
	case StatusWarning:
		return pterm.FgYellow
	case StatusError:
		return pterm.FgRed
	default:
		return pterm.FgDefault
	}
}

// Style retorna un pterm.Style configurado para el estado
func (s Status) Style() *pterm.Style {
	return pterm.NewStyle(s.Color())
}

// CategoryStatus traduce el estado de una categoría
func CategoryStatus(state domain.CategoryState) Status {
	switch state {
	case domain.CategoryCompleted:
		return StatusSuccess
	case domain.CategoryPartial:
		return StatusWarning
	case domain.CategoryFailed:
		return StatusError
	case domain.CategoryNotAttempted:
		return StatusSkipped
	default:
		return StatusPending
	}
}

// OutcomeStatus traduce el estado de un outcome
func OutcomeStatus(status domain.OutcomeStatus) Status {
	switch status {
	case domain.OutcomeFound:
		return StatusSuccess
	case domain.OutcomeUnreachable:
		return StatusWarning
	default:
		return StatusPending
	}
}

// Icons globales para diferentes elementos de la UI
var (
	IconTarget   = "🎯"
	IconInfo     = "ℹ"
	IconWarning  = "⚠"
	IconError    = "✗"
	IconSuccess  = "✓"
	IconStats    = "📊"
	IconTime     = "⏱"
	IconFound    = "🔍"
	IconCategory = "📂"
	IconWorkers  = "⚙️"
	IconLock     = "🔒"
)

// Separadores y bordes
var (
	SeparatorHeavy = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	SeparatorLight = "────────────────────────────────────────────"
)
