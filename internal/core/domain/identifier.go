// internal/core/domain/identifier.go
package domain

import "strings"

// Placeholder es el marcador que se sustituye en cada template.
const Placeholder = "{phone}"

// Identifier es el valor normalizado que se busca en cada servicio.
// El core lo trata como opaco: no valida formato telefónico.
type Identifier string

// NewIdentifier recorta espacios y rechaza valores vacíos.
func NewIdentifier(raw string) (Identifier, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", ErrEmptyIdentifier
	}
	return Identifier(v), nil
}

// Substitute reemplaza el placeholder en el template sin re-encodear el valor.
func (id Identifier) Substitute(template string) string {
	return strings.ReplaceAll(template, Placeholder, string(id))
}

// String retorna el identificador como string.
func (id Identifier) String() string {
	return string(id)
}
