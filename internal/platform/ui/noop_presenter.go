// internal/platform/ui/noop_presenter.go
package ui

import (
	"context"

	"phoneprobe/internal/core/ports"
)

// NoopPresenter es una implementación vacía del Presenter
// que no produce ninguna salida. Útil para modo quiet o headless.
type NoopPresenter struct{}

// NewNoopPresenter crea una instancia del presenter sin salida
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

// Banner no hace nada
func (n *NoopPresenter) Banner(info RunInfo) {}

// Notify no hace nada
func (n *NoopPresenter) Notify(ctx context.Context, event ports.Event) error { return nil }

// Close no hace nada
func (n *NoopPresenter) Close() error {
	return nil
}
