// internal/core/domain/target.go
package domain

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Target es un endpoint del catálogo: una fuente dentro de una categoría.
type Target struct {
	// Category nombre de la categoría a la que pertenece
	Category string

	// Source nombre de la fuente, único dentro de la categoría
	Source string

	// Template URL con el placeholder {phone}
	Template string
}

// NewTarget crea un target.
func NewTarget(category, source, template string) Target {
	return Target{Category: category, Source: source, Template: template}
}

// Resolve sustituye el identificador en el template.
func (t Target) Resolve(id Identifier) string {
	return id.Substitute(t.Template)
}

// Scheme retorna el esquema del template en minúsculas ("https", "viber", ...).
func (t Target) Scheme() string {
	i := strings.Index(t.Template, ":")
	if i <= 0 {
		return ""
	}
	return strings.ToLower(t.Template[:i])
}

// IsWeb indica si el target usa http o https.
func (t Target) IsWeb() bool {
	s := t.Scheme()
	return s == "http" || s == "https"
}

// Site retorna el dominio registrable (eTLD+1) del host del template.
// Para esquemas que no son web retorna "".
func (t Target) Site() string {
	if !t.IsWeb() {
		return ""
	}
	u, err := url.Parse(t.Resolve("0"))
	if err != nil {
		return ""
	}
	host := u.Hostname()
	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return site
}
