// internal/adapters/output/markdown.go
package output

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"phoneprobe/internal/core/domain"
)

// MarkdownExporter genera un reporte Markdown: resumen, distribución y una
// tabla por categoría.
type MarkdownExporter struct{}

// NewMarkdownExporter crea un MarkdownExporter.
func NewMarkdownExporter() *MarkdownExporter { return &MarkdownExporter{} }

// Name implementa ports.Exporter.
func (e *MarkdownExporter) Name() string { return FormatMarkdown }

// Extension implementa ports.Exporter.
func (e *MarkdownExporter) Extension() string { return "md" }

// Export implementa ports.Exporter.
func (e *MarkdownExporter) Export(w io.Writer, report *domain.Report) error {
	md := markdown.NewMarkdown(w)

	e.writeHeader(md, report)
	e.writeSummary(md, report)
	e.writeHits(md, report)
	for _, c := range report.Categories {
		e.writeCategory(md, c)
	}
	md.HorizontalRule()
	md.PlainText("*Found means the endpoint answered HTTP 200. Treat hits as leads, not evidence.*")

	if err := md.Build(); err != nil {
		return fmt.Errorf("failed to build markdown: %w", err)
	}
	return nil
}

func (e *MarkdownExporter) writeHeader(md *markdown.Markdown, report *domain.Report) {
	md.H1("phoneprobe Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Identifier", "`" + report.Identifier.String() + "`"},
			{"Run ID", report.ID},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", report.Duration.Round(time.Millisecond).String()},
			{"Status", runStatusText(report)},
		},
	})
	md.PlainText("")
}

func runStatusText(report *domain.Report) string {
	switch {
	case report.Canceled:
		return "⚠️ Canceled (partial results)"
	case report.Summary.Failed > 0:
		return "❌ Completed with failed categories"
	case report.Complete():
		return "✅ Complete"
	default:
		return "⚠️ Partial results"
	}
}

func (e *MarkdownExporter) writeSummary(md *markdown.Markdown, report *domain.Report) {
	s := report.Summary
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Checked", strconv.Itoa(s.Checked)},
			{LabelFound, strconv.Itoa(s.Found)},
			{LabelNotFound, strconv.Itoa(s.NotFound)},
			{LabelUnreachable, strconv.Itoa(s.Unreachable)},
			{"Categories", strconv.Itoa(s.Categories)},
			{"Failed categories", strconv.Itoa(s.Failed)},
			{"Not attempted", strconv.Itoa(s.NotAttempted)},
		},
	})
	md.PlainText("")

	if s.Checked > 0 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Outcome Distribution"),
			piechart.WithShowData(true),
		)
		if s.Found > 0 {
			chart.LabelAndIntValue("Found", uint64(s.Found))
		}
		if s.NotFound > 0 {
			chart.LabelAndIntValue("Not found", uint64(s.NotFound))
		}
		if s.Unreachable > 0 {
			chart.LabelAndIntValue("Unreachable", uint64(s.Unreachable))
		}
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	switch {
	case report.Canceled:
		md.Warningf("Run was canceled. %d categor(ies) were not attempted.", s.NotAttempted)
	case s.Failed > 0:
		md.Cautionf("%d categor(ies) failed and carry no outcomes.", s.Failed)
	case s.Found > 0:
		md.Importantf("%d endpoint(s) answered 200 for this identifier.", s.Found)
	default:
		md.Note("No endpoint answered 200.")
	}
	md.PlainText("")
}

// writeHits lista los found de toda la corrida antes del detalle.
func (e *MarkdownExporter) writeHits(md *markdown.Markdown, report *domain.Report) {
	hits := report.FoundOutcomes()
	if len(hits) == 0 {
		return
	}
	md.H2("Hits")
	md.PlainText("")

	rows := make([][]string, 0, len(hits))
	for _, o := range hits {
		rows = append(rows, []string{o.Source, siteText(o), o.URL})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Source", "Site", "URL"},
		Rows:   rows,
	})
	md.PlainText("")
}

func siteText(o domain.Outcome) string {
	if o.Site == "" {
		return "-"
	}
	return o.Site
}

func (e *MarkdownExporter) writeCategory(md *markdown.Markdown, c domain.CategoryResult) {
	md.H2(titleOf(c))
	md.PlainText("")

	switch c.State {
	case domain.CategoryFailed:
		md.Caution("Category failed: " + c.Error)
		md.PlainText("")
		return
	case domain.CategoryNotAttempted:
		md.Note("Category was not attempted.")
		md.PlainText("")
		return
	case domain.CategoryPartial:
		md.Warningf("Partial: %d of %d endpoints probed.", len(c.Outcomes), c.Expected)
		md.PlainText("")
	}

	if len(c.Outcomes) == 0 {
		md.PlainText("No endpoints.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(c.Outcomes))
	for _, o := range c.Outcomes {
		code := "-"
		if o.StatusCode > 0 {
			code = strconv.Itoa(o.StatusCode)
		}
		rows = append(rows, []string{o.Source, siteText(o), StatusLabel(o.Status), code, o.URL})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Source", "Site", "Status", "Code", "URL"},
		Rows:   rows,
	})
	md.PlainText("")
}
