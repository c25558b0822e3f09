// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"phoneprobe/internal/core/domain"
)

// JSONExporter exporta el reporte completo en JSON indentado.
type JSONExporter struct {
	pretty bool
}

// NewJSONExporter crea un JSONExporter con indentación.
func NewJSONExporter() *JSONExporter { return &JSONExporter{pretty: true} }

// Name implementa ports.Exporter.
func (e *JSONExporter) Name() string { return FormatJSON }

// Extension implementa ports.Exporter.
func (e *JSONExporter) Extension() string { return "json" }

// Export implementa ports.Exporter.
func (e *JSONExporter) Export(w io.Writer, report *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if e.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
