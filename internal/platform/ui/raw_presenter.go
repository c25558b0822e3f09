// internal/platform/ui/raw_presenter.go
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"phoneprobe/internal/core/ports"
)

// RawPresenter implementa el Presenter para modo raw: una línea logfmt por
// evento, sin colores ni cursor. Pensado para pipes y CI.
type RawPresenter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewRawPresenter crea un nuevo RawPresenter; nil escribe a stdout
func NewRawPresenter(w io.Writer) *RawPresenter {
	if w == nil {
		w = os.Stdout
	}
	return &RawPresenter{out: w}
}

// log escribe en formato logfmt: timestamp LEVEL message key=value key2=value2
func (r *RawPresenter) log(level, message string, fields map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	parts := []string{
		time.Now().UTC().Format(time.RFC3339),
		fmt.Sprintf("%-5s", level),
		message,
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, formatValue(fields[k])))
	}

	fmt.Fprintln(r.out, strings.Join(parts, " "))
}

// formatValue formatea valores para logfmt (entrecomilla strings con espacios)
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if val == "" || strings.ContainsAny(val, " =\"") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case time.Duration:
		return val.String()
	case float64:
		return fmt.Sprintf("%.1f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Banner registra la configuración de la ejecución
func (r *RawPresenter) Banner(info RunInfo) {
	r.log("INFO", "run_config", map[string]interface{}{
		"identifier":  info.Identifier,
		"categories":  info.Categories,
		"targets":     info.Targets,
		"workers":     info.Workers,
		"timeout":     info.Timeout,
		"retries":     info.Retries,
		"retry_delay": info.RetryDelay,
		"insecure":    info.Insecure,
	})
}

// Notify implementa ports.Notifier
func (r *RawPresenter) Notify(ctx context.Context, event ports.Event) error {
	switch data := event.Data.(type) {
	case ports.RunStartedEvent:
		r.log("INFO", "run_started", map[string]interface{}{
			"run_id":     event.RunID,
			"categories": len(data.Categories),
			"targets":    data.Targets,
		})

	case ports.CategoryStartedEvent:
		r.log("INFO", "category_started", map[string]interface{}{
			"category": event.Category,
			"targets":  data.Targets,
		})

	case ports.ProbeCompletedEvent:
		o := data.Outcome
		if !o.Found {
			return nil
		}
		r.log("INFO", "found", map[string]interface{}{
			"category": event.Category,
			"source":   o.Source,
			"url":      o.URL,
		})

	case ports.CategoryCompletedEvent:
		res := data.Result
		level := "INFO"
		if res.State.IsMarker() {
			level = "WARN"
		}
		fields := map[string]interface{}{
			"category": res.Category,
			"state":    string(res.State),
			"found":    res.FoundCount(),
			"probed":   res.Size(),
			"expected": res.Expected,
			"duration": res.Duration.Round(time.Millisecond),
		}
		if res.Error != "" {
			fields["error"] = res.Error
		}
		r.log(level, "category_completed", fields)

	case ports.RunCompletedEvent:
		if data.Report == nil {
			return nil
		}
		s := data.Report.Summary
		r.log("INFO", "run_completed", map[string]interface{}{
			"run_id":        data.Report.ID,
			"checked":       s.Checked,
			"found":         s.Found,
			"not_found":     s.NotFound,
			"unreachable":   s.Unreachable,
			"failed":        s.Failed,
			"not_attempted": s.NotAttempted,
			"canceled":      data.Report.Canceled,
			"duration":      data.Report.Duration.Round(time.Millisecond),
		})
	}
	return nil
}

// Close no libera nada
func (r *RawPresenter) Close() error {
	return nil
}
