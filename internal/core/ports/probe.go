// internal/core/ports/probe.go
package ports

import (
	"context"

	"phoneprobe/internal/core/domain"
)

// Transport es el port de red: un único GET por llamada.
// Un error significa que no hubo respuesta; cualquier código HTTP es una respuesta.
type Transport interface {
	Get(ctx context.Context, url string, headers map[string]string) (int, error)
}

// TransportFunc adapta una función a Transport.
type TransportFunc func(ctx context.Context, url string, headers map[string]string) (int, error)

// Get implementa Transport.
func (f TransportFunc) Get(ctx context.Context, url string, headers map[string]string) (int, error) {
	return f(ctx, url, headers)
}

// Throttle regula el ritmo global de intentos. Wait bloquea hasta que haya
// permiso o ctx termine; se llama antes de abrir el plazo del intento.
type Throttle interface {
	Wait(ctx context.Context) error
}

// IdentityProvider entrega una identidad fresca por intento.
type IdentityProvider interface {
	Next() domain.Identity
}

// Catalog es la vista de solo lectura del catálogo que usa el scheduler.
type Catalog interface {
	// Categories retorna los nombres en orden de catálogo
	Categories() []string

	// Targets retorna los targets de una categoría en orden de catálogo
	Targets(category string) []domain.Target

	// Title retorna el nombre legible de la categoría
	Title(category string) string
}
