// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"phoneprobe/internal/core/domain"
)

// TableExporter renderiza el reporte como tablas pterm para terminal.
type TableExporter struct {
	// OnlyFound omite los outcomes que no son found
	OnlyFound bool
}

// NewTableExporter crea un TableExporter con todos los outcomes.
func NewTableExporter() *TableExporter { return &TableExporter{} }

// Name implementa ports.Exporter.
func (e *TableExporter) Name() string { return FormatTable }

// Extension implementa ports.Exporter.
func (e *TableExporter) Extension() string { return "txt" }

// Export implementa ports.Exporter.
func (e *TableExporter) Export(w io.Writer, report *domain.Report) error {
	fmt.Fprintf(w, "\n=== phoneprobe results for %s ===\n", report.Identifier)
	fmt.Fprintf(w, "Checked: %d  Found: %d  Not found: %d  Unreachable: %d  Duration: %s\n\n",
		report.Summary.Checked,
		report.Summary.Found,
		report.Summary.NotFound,
		report.Summary.Unreachable,
		report.Duration.Round(time.Millisecond),
	)

	tableData := pterm.TableData{
		{"Category", "Source", "Status", "Code", "URL"},
	}

	for _, c := range report.Categories {
		title := titleOf(c)
		switch c.State {
		case domain.CategoryFailed:
			tableData = append(tableData, []string{title, "", LabelFailed, "", c.Error})
			continue
		case domain.CategoryNotAttempted:
			tableData = append(tableData, []string{title, "", LabelNotRun, "", ""})
			continue
		}

		for _, o := range c.Outcomes {
			if e.OnlyFound && !o.Found {
				continue
			}
			code := ""
			if o.StatusCode > 0 {
				code = strconv.Itoa(o.StatusCode)
			}
			tableData = append(tableData, []string{title, o.Source, StatusLabel(o.Status), code, o.URL})
		}
	}

	if len(tableData) == 1 {
		fmt.Fprintln(w, "No results to display.")
		return nil
	}

	rendered, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithData(tableData).
		Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if _, err := fmt.Fprintln(w, rendered); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}
