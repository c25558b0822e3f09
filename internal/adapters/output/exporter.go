// internal/adapters/output/exporter.go
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"phoneprobe/internal/core/domain"
	"phoneprobe/internal/core/ports"
	"phoneprobe/internal/platform/errors"
)

// Nombres de formato soportados.
const (
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatTable    = "table"
)

var registry = map[string]func() ports.Exporter{
	FormatCSV:      func() ports.Exporter { return NewCSVExporter() },
	FormatJSON:     func() ports.Exporter { return NewJSONExporter() },
	FormatYAML:     func() ports.Exporter { return NewYAMLExporter() },
	FormatMarkdown: func() ports.Exporter { return NewMarkdownExporter() },
	FormatTable:    func() ports.Exporter { return NewTableExporter() },
}

var extensions = map[string]string{
	".csv":      FormatCSV,
	".json":     FormatJSON,
	".yaml":     FormatYAML,
	".yml":      FormatYAML,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".txt":      FormatTable,
}

// ByName retorna el exporter de un formato.
func ByName(name string) (ports.Exporter, error) {
	ctor, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, name)
	}
	return ctor(), nil
}

// Formats retorna los formatos registrados, ordenados.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ForPath infiere el exporter a partir de la extensión del archivo.
func ForPath(path string) (ports.Exporter, error) {
	ext := strings.ToLower(filepath.Ext(path))
	name, ok := extensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: extension %q", domain.ErrUnsupportedFormat, ext)
	}
	return ByName(name)
}

// sanitizeName convierte un identificador en un nombre de carpeta válido.
// Ejemplo: "+1 555-123" -> "1_555-123"
func sanitizeName(value string) string {
	value = strings.TrimPrefix(strings.TrimSpace(value), "+")
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, value)
	if sanitized == "" {
		return "unknown"
	}
	return sanitized
}

// WriteFile exporta el reporte a path usando el formato de su extensión.
func WriteFile(path string, report *domain.Report) error {
	if strings.TrimSpace(path) == "" {
		return domain.ErrInvalidOutputPath
	}
	exp, err := ForPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return writeWith(exp, path, report)
}

// WriteFiles exporta el reporte en cada formato bajo dir/<identificador>/.
// Nombre de archivo: phoneprobe_{identificador}_{timestamp}.{ext}
// Retorna las rutas escritas; un formato fallido no impide los demás.
func WriteFiles(dir string, report *domain.Report, formats []string) ([]string, error) {
	if dir == "" {
		dir = "."
	}

	name := sanitizeName(report.Identifier.String())
	fullDir := filepath.Join(dir, name)
	if err := os.MkdirAll(fullDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	stamp := report.StartedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	timestamp := stamp.Format("20060102_150405")

	var written []string
	var errs []error
	for _, format := range formats {
		exp, err := ByName(format)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		filename := fmt.Sprintf("phoneprobe_%s_%s.%s", name, timestamp, exp.Extension())
		path := filepath.Join(fullDir, filename)
		if err := writeWith(exp, path, report); err != nil {
			errs = append(errs, err)
			continue
		}
		written = append(written, path)
	}

	if len(errs) > 0 {
		return written, errors.Join(errs...)
	}
	return written, nil
}

func writeWith(exp ports.Exporter, path string, report *domain.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	if err := exp.Export(f, report); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrExportFailed, exp.Name(), err)
	}
	return nil
}
