// internal/core/ports/exporter.go
package ports

import (
	"io"

	"phoneprobe/internal/core/domain"
)

// Exporter es el port para exportar reportes en diferentes formatos.
// Los exporters son de solo lectura sobre el Report y respetan su orden.
type Exporter interface {
	// Name retorna el nombre del exporter (ej: "csv", "json", "markdown")
	Name() string

	// Extension retorna la extensión de archivo sin punto
	Extension() string

	// Export escribe el reporte en w
	Export(w io.Writer, report *domain.Report) error
}
