// internal/platform/ui/pterm_presenter.go
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"phoneprobe/internal/core/domain"
	"phoneprobe/internal/core/ports"
)

// PTermPresenter implementa Presenter usando la biblioteca pterm:
// banner, barra de progreso global, una línea por categoría y resumen final.
type PTermPresenter struct {
	mu   sync.Mutex
	out  io.Writer
	opts Options

	// Tracking de progreso
	bar       *pterm.ProgressbarPrinter
	total     int
	completed int
	seen      map[string]int
	found     []foundLine
	startTime time.Time
}

type foundLine struct {
	category string
	source   string
	url      string
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm
func NewPTermPresenter(opts Options) *PTermPresenter {
	out := opts.Writer
	if out == nil {
		out = os.Stdout
	}
	return &PTermPresenter{
		out:  out,
		opts: opts,
		seen: make(map[string]int),
	}
}

// Banner muestra el banner y la configuración de la ejecución
func (p *PTermPresenter) Banner(info RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.opts.NoBanner {
		banner, err := pterm.DefaultBigText.
			WithLetters(putils.LettersFromStringWithStyle("phone", pterm.NewStyle(pterm.FgCyan)),
				putils.LettersFromStringWithStyle("probe", pterm.NewStyle(pterm.FgLightBlue))).
			Srender()
		if err == nil {
			fmt.Fprintln(p.out, banner)
		}
	}

	content := fmt.Sprintf("%s Identifier: %s\n", IconTarget, pterm.Cyan(info.Identifier))
	content += fmt.Sprintf("%s Categories: %d (%d endpoints)\n", IconCategory, info.Categories, info.Targets)
	content += fmt.Sprintf("%s Workers: %d\n", IconWorkers, info.Workers)
	content += fmt.Sprintf("%s Timeout: %s, %d attempts, %s delay\n",
		IconTime, info.Timeout, info.Retries, info.RetryDelay)
	content += fmt.Sprintf("%s Insecure TLS: %s\n", IconLock, boolToString(info.Insecure))
	content += fmt.Sprintf("   Streaming: %s", boolToString(info.Streaming))

	box := pterm.DefaultBox.
		WithTitle("Run Configuration").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(content)

	fmt.Fprintln(p.out, box)
	fmt.Fprintln(p.out, pterm.LightBlue(SeparatorHeavy))
	fmt.Fprintln(p.out)
}

// Notify implementa ports.Notifier
func (p *PTermPresenter) Notify(ctx context.Context, event ports.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch data := event.Data.(type) {
	case ports.RunStartedEvent:
		p.startRun(data)
	case ports.ProbeCompletedEvent:
		p.probeCompleted(event.Category, data.Outcome)
	case ports.CategoryCompletedEvent:
		p.categoryCompleted(data.Result)
	case ports.RunCompletedEvent:
		p.finish(data.Report)
	}
	return nil
}

func (p *PTermPresenter) startRun(data ports.RunStartedEvent) {
	p.total = data.Targets
	p.completed = 0
	p.seen = make(map[string]int)
	p.found = nil
	p.startTime = time.Now()

	if p.opts.NoProgress || p.total == 0 {
		return
	}
	bar, err := pterm.DefaultProgressbar.
		WithTotal(p.total).
		WithTitle("Probing").
		WithWriter(p.out).
		WithRemoveWhenDone(true).
		Start()
	if err == nil {
		p.bar = bar
	}
}

func (p *PTermPresenter) probeCompleted(category string, o domain.Outcome) {
	p.seen[category]++
	p.advance(1)

	switch {
	case o.Found:
		p.found = append(p.found, foundLine{category: category, source: o.Source, url: o.URL})
		fmt.Fprintln(p.out, StyleSuccess.Sprintf("  %s %s %s", IconSuccess, o.Source, pterm.Gray(o.URL)))
	case p.opts.ShowMisses && !o.Reachable():
		fmt.Fprintln(p.out, StyleWarning.Sprintf("  %s %s (%s)", IconWarning, o.Source, o.FailureKind))
	case p.opts.ShowMisses:
		fmt.Fprintln(p.out, StyleSecondary.Sprintf("  · %s %d", o.Source, o.StatusCode))
	}
}

func (p *PTermPresenter) categoryCompleted(r domain.CategoryResult) {
	// Los marcadores no emiten probes: completar su parte de la barra.
	if remaining := r.Expected - p.seen[r.Category]; remaining > 0 {
		p.advance(remaining)
		p.seen[r.Category] = r.Expected
	}

	status := CategoryStatus(r.State)
	title := r.Title
	if title == "" {
		title = r.Category
	}

	line := fmt.Sprintf("%s %s", status.Symbol(), title)
	switch r.State {
	case domain.CategoryCompleted:
		line += fmt.Sprintf(" %d/%d found (%s)", r.FoundCount(), r.Size(), formatDuration(r.Duration))
	case domain.CategoryPartial:
		line += fmt.Sprintf(" partial %d/%d probed", r.Size(), r.Expected)
	case domain.CategoryFailed:
		line += " failed: " + r.Error
	case domain.CategoryNotAttempted:
		line += " not attempted"
	}
	fmt.Fprintln(p.out, status.Style().Sprint(line))
}

func (p *PTermPresenter) advance(n int) {
	p.completed += n
	if p.bar == nil {
		return
	}
	p.bar.Add(n)
}

func (p *PTermPresenter) stopBar() {
	if p.bar != nil {
		_, _ = p.bar.Stop()
		p.bar = nil
	}
}

// finish muestra el resumen final
func (p *PTermPresenter) finish(report *domain.Report) {
	p.stopBar()
	if report == nil {
		return
	}
	s := report.Summary

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, pterm.LightBlue(SeparatorHeavy))

	content := fmt.Sprintf("%s Duration: %s\n", IconTime, pterm.Green(formatDuration(report.Duration)))
	content += fmt.Sprintf("%s Checked: %s\n", IconStats, pterm.Cyan(fmt.Sprintf("%d", s.Checked)))
	content += fmt.Sprintf("%s Found: %s\n", IconFound, pterm.Green(fmt.Sprintf("%d", s.Found)))
	content += fmt.Sprintf("   Not found: %d\n", s.NotFound)
	content += fmt.Sprintf("%s Unreachable: %s", IconWarning, pterm.Yellow(fmt.Sprintf("%d", s.Unreachable)))
	if s.Failed > 0 {
		content += fmt.Sprintf("\n%s Failed categories: %s", IconError, pterm.Red(fmt.Sprintf("%d", s.Failed)))
	}
	if s.NotAttempted > 0 {
		content += fmt.Sprintf("\n   Not attempted: %d", s.NotAttempted)
	}

	title := "Run Completed"
	style := pterm.NewStyle(pterm.FgGreen)
	if report.Canceled {
		title = "Run Canceled"
		style = pterm.NewStyle(pterm.FgYellow)
	}

	box := pterm.DefaultBox.
		WithTitle(title).
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(style).
		Sprint(content)
	fmt.Fprintln(p.out, box)

	if len(p.found) > 0 {
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, StylePrimary.Sprint("Found"))
		for _, f := range p.found {
			fmt.Fprintf(p.out, "  %s %s / %s  %s\n", IconSuccess, f.category, f.source, f.url)
		}
	}
	fmt.Fprintln(p.out)
}

// Close limpia recursos del presenter
func (p *PTermPresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopBar()
	return nil
}

// Completed retorna cuántos endpoints ha contabilizado la barra
func (p *PTermPresenter) Completed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed
}
