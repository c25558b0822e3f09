// internal/adapters/output/streaming.go
package output

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"phoneprobe/internal/core/domain"
	"phoneprobe/internal/core/ports"
	"phoneprobe/internal/platform/logx"
)

// StreamingWriter escribe cada categoría terminada como una línea NDJSON en
// un archivo parcial, de modo que una ejecución interrumpida deja datos en
// disco. El archivo se elimina cuando la ejecución termina sin cancelación.
type StreamingWriter struct {
	mu      sync.Mutex
	baseDir string
	id      domain.Identifier
	path    string
	file    *os.File
	lines   int
	logger  logx.Logger
}

// PartialCategory es una línea del archivo parcial.
type PartialCategory struct {
	RunID      string                `json:"run_id"`
	Identifier domain.Identifier     `json:"identifier"`
	WrittenAt  time.Time             `json:"written_at"`
	Result     domain.CategoryResult `json:"result"`
}

// NewStreamingWriter crea un writer que escribirá bajo baseDir/<identificador>/.
func NewStreamingWriter(baseDir string, id domain.Identifier, logger logx.Logger) *StreamingWriter {
	if baseDir == "" {
		baseDir = "."
	}
	if logger == nil {
		logger = logx.NewNop()
	}
	name := sanitizeName(id.String())
	filename := fmt.Sprintf("phoneprobe_%s_%s.partial.ndjson", name, time.Now().Format("20060102_150405"))

	return &StreamingWriter{
		baseDir: baseDir,
		id:      id,
		path:    filepath.Join(baseDir, name, filename),
		logger:  logger.With("component", "streaming-writer"),
	}
}

// Path retorna la ruta del archivo parcial.
func (w *StreamingWriter) Path() string {
	return w.path
}

// Lines retorna cuántas categorías se han escrito.
func (w *StreamingWriter) Lines() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lines
}

// Notify implementa ports.Notifier.
func (w *StreamingWriter) Notify(ctx context.Context, event ports.Event) error {
	switch event.Type {
	case ports.EventTypeCategoryCompleted:
		data, ok := event.Data.(ports.CategoryCompletedEvent)
		if !ok {
			return nil
		}
		return w.WritePartial(event.RunID, data.Result)

	case ports.EventTypeRunCompleted:
		data, ok := event.Data.(ports.RunCompletedEvent)
		if !ok || data.Report == nil {
			return nil
		}
		if data.Report.Canceled {
			w.logger.Info("partial results kept", "file", w.path, "categories", w.Lines())
			return w.Close()
		}
		return w.Discard()
	}
	return nil
}

// WritePartial agrega una categoría al archivo parcial.
func (w *StreamingWriter) WritePartial(runID string, result domain.CategoryResult) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create partial file: %w", err)
		}
		w.file = f
	}

	line, err := json.Marshal(PartialCategory{
		RunID:      runID,
		Identifier: w.id,
		WrittenAt:  time.Now(),
		Result:     result,
	})
	if err != nil {
		return fmt.Errorf("failed to encode partial JSON: %w", err)
	}
	line = append(line, '\n')
	if _, err := w.file.Write(line); err != nil {
		return fmt.Errorf("failed to write partial file: %w", err)
	}
	w.lines++

	w.logger.Debug("partial result written",
		"category", result.Category,
		"state", result.State,
		"outcomes", len(result.Outcomes),
	)
	return nil
}

// Discard cierra y elimina el archivo parcial.
func (w *StreamingWriter) Discard() error {
	if err := w.Close(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := os.Remove(w.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove partial file: %w", err)
	}
	return nil
}

// Close implementa ports.Notifier; conserva el archivo.
func (w *StreamingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	if err != nil {
		return fmt.Errorf("failed to close partial file: %w", err)
	}
	return nil
}

// ReadPartials carga las categorías de un archivo parcial.
func ReadPartials(path string) ([]PartialCategory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open partial file: %w", err)
	}
	defer f.Close()

	var out []PartialCategory
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var p PartialCategory
		if err := json.Unmarshal(scanner.Bytes(), &p); err != nil {
			return out, fmt.Errorf("failed to decode partial line %d: %w", len(out)+1, err)
		}
		out = append(out, p)
	}
	if err := scanner.Err(); err != nil {
		return out, fmt.Errorf("failed to read partial file: %w", err)
	}
	return out, nil
}
