// internal/platform/ui/presenter.go
package ui

import (
	"io"
	"time"

	"phoneprobe/internal/core/ports"
)

// UIMode define el modo de visualización
type UIMode string

const (
	UIModePretty UIMode = "pretty" // Banner, barra de progreso y resumen (default en terminal)
	UIModeRaw    UIMode = "raw"    // Una línea logfmt por evento (pipes, CI)
	UIModeQuiet  UIMode = "quiet"  // Sin UI visual
)

// Presenter muestra el progreso de una ejecución. Recibe los eventos del
// scheduler como cualquier ports.Notifier.
type Presenter interface {
	ports.Notifier

	// Banner muestra la cabecera con la configuración de la ejecución
	Banner(info RunInfo)
}

// RunInfo contiene la configuración mostrada en el banner
type RunInfo struct {
	Identifier string
	Categories int
	Targets    int
	Workers    int
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
	Insecure   bool
	Streaming  bool
}

// Options configura los presenters
type Options struct {
	// Writer destino; nil usa stdout
	Writer io.Writer

	// NoBanner omite el banner BigText
	NoBanner bool

	// NoProgress desactiva la barra de progreso
	NoProgress bool

	// ShowMisses imprime también los not found
	ShowMisses bool
}

// New crea el presenter para el modo indicado.
func New(mode UIMode, opts Options) Presenter {
	switch mode {
	case UIModeQuiet:
		return NewNoopPresenter()
	case UIModeRaw:
		return NewRawPresenter(opts.Writer)
	default:
		return NewPTermPresenter(opts)
	}
}
