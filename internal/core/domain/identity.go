// internal/core/domain/identity.go
package domain

// Identity es la identidad de red presentada en un intento.
type Identity struct {
	// UserAgent firma de navegador para el intento
	UserAgent string

	// Headers cabeceras adicionales tipo navegador (sin User-Agent)
	Headers map[string]string
}

// HeaderMap retorna todas las cabeceras del intento, User-Agent incluido.
func (i Identity) HeaderMap() map[string]string {
	h := make(map[string]string, len(i.Headers)+1)
	for k, v := range i.Headers {
		h[k] = v
	}
	if i.UserAgent != "" {
		h["User-Agent"] = i.UserAgent
	}
	return h
}
