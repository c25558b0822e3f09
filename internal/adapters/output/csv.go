// internal/adapters/output/csv.go
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"phoneprobe/internal/core/domain"
)

// Etiquetas de estado del CSV.
const (
	LabelFound       = "✅ Found"
	LabelNotFound    = "❌ Not found"
	LabelUnreachable = "⚠️ Unreachable"
	LabelFailed      = "⛔ Category failed"
	LabelNotRun      = "⏸️ Not attempted"
)

// CSVExporter escribe el layout clásico: una fila título por categoría
// seguida de una fila por fuente.
type CSVExporter struct{}

// NewCSVExporter crea un CSVExporter.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

// Name implementa ports.Exporter.
func (e *CSVExporter) Name() string { return FormatCSV }

// Extension implementa ports.Exporter.
func (e *CSVExporter) Extension() string { return "csv" }

// Export implementa ports.Exporter.
func (e *CSVExporter) Export(w io.Writer, report *domain.Report) error {
	cw := csv.NewWriter(w)

	rows := [][]string{{"Category", "Source", "Status", "URL"}}
	for _, c := range report.Categories {
		rows = append(rows, []string{strings.ToUpper(titleOf(c)), "", "", ""})

		switch c.State {
		case domain.CategoryFailed:
			rows = append(rows, []string{"", "", LabelFailed, c.Error})
			continue
		case domain.CategoryNotAttempted:
			rows = append(rows, []string{"", "", LabelNotRun, ""})
			continue
		}

		for _, o := range c.Outcomes {
			rows = append(rows, []string{"", o.Source, StatusLabel(o.Status), o.URL})
		}
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// StatusLabel retorna la etiqueta legible de un estado.
func StatusLabel(s domain.OutcomeStatus) string {
	switch s {
	case domain.OutcomeFound:
		return LabelFound
	case domain.OutcomeUnreachable:
		return LabelUnreachable
	default:
		return LabelNotFound
	}
}

func titleOf(c domain.CategoryResult) string {
	if c.Title != "" {
		return c.Title
	}
	return c.Category
}
