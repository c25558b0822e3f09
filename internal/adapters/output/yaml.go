// internal/adapters/output/yaml.go
package output

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"phoneprobe/internal/core/domain"
)

// YAMLExporter exporta el reporte en YAML.
type YAMLExporter struct{}

// NewYAMLExporter crea un YAMLExporter.
func NewYAMLExporter() *YAMLExporter { return &YAMLExporter{} }

// Name implementa ports.Exporter.
func (e *YAMLExporter) Name() string { return FormatYAML }

// Extension implementa ports.Exporter.
func (e *YAMLExporter) Extension() string { return "yaml" }

// Export implementa ports.Exporter.
func (e *YAMLExporter) Export(w io.Writer, report *domain.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush YAML: %w", err)
	}
	return nil
}
