// internal/platform/validator/validator.go
package validator

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// Errores de validación de templates.
var (
	ErrEmptyTemplate      = errors.New("template is empty")
	ErrPlaceholderCount   = errors.New("template must contain the placeholder exactly once")
	ErrTemplateParse      = errors.New("template does not parse as a url")
	ErrTemplateNoScheme   = errors.New("template has no scheme")
	ErrTemplateNoHost     = errors.New("web template has no host")
	ErrTemplateBadHost    = errors.New("web template host is not a valid domain")
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidCategoryKey = errors.New("invalid category key")
)

var (
	domainRegex   = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?$`)
	categoryRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]*$`)
	phoneRegex    = regexp.MustCompile(`^\+?[0-9]{5,15}$`)
)

// Domain validators

// IsDomain verifica si un string es un dominio válido.
func IsDomain(domain string) bool {
	if len(domain) == 0 || len(domain) > 253 {
		return false
	}
	if !domainRegex.MatchString(domain) {
		return false
	}
	// Verificar que no sea una IP
	return net.ParseIP(domain) == nil
}

// Template validators

// ValidateTemplate verifica que un template de URL sea usable:
// el placeholder aparece exactamente una vez, la URL resultante parsea,
// tiene esquema y, si es http/https, un host con forma de dominio.
func ValidateTemplate(template, placeholder string) error {
	if strings.TrimSpace(template) == "" {
		return ErrEmptyTemplate
	}
	if n := strings.Count(template, placeholder); n != 1 {
		return fmt.Errorf("%w (found %d)", ErrPlaceholderCount, n)
	}

	// Sustituir por un valor neutro para poder parsear.
	probe := strings.Replace(template, placeholder, "0", 1)
	u, err := url.Parse(probe)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	if u.Scheme == "" {
		return ErrTemplateNoScheme
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		host := u.Hostname()
		if host == "" {
			return ErrTemplateNoHost
		}
		if !IsDomain(host) && net.ParseIP(host) == nil {
			return fmt.Errorf("%w: %s", ErrTemplateBadHost, host)
		}
	}
	return nil
}

// Name validators

// IsCategoryKey verifica la clave de una categoría (snake_case en minúsculas).
func IsCategoryKey(s string) bool {
	return categoryRegex.MatchString(s)
}

// IsDisplayName verifica el nombre de una fuente: no vacío, sin caracteres de control.
func IsDisplayName(s string) bool {
	if strings.TrimSpace(s) == "" || len(s) > 64 {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// Identifier helpers

// NormalizePhone elimina espacios y separadores visuales ("-", "(", ")", ".").
// No valida el resultado.
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case unicode.IsSpace(r):
		case r == '-' || r == '(' || r == ')' || r == '.':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPhoneLike indica si el valor parece un número E.164 (opcional "+", 5-15 dígitos).
// Solo se usa para advertir; el motor acepta cualquier identificador.
func IsPhoneLike(s string) bool {
	return phoneRegex.MatchString(s)
}
