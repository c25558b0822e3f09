// internal/identity/identity.go
package identity

import (
	"math/rand/v2"
	"sync"

	"phoneprobe/internal/core/domain"
)

// BaseHeaders se envían en cada intento junto al User-Agent rotado.
var BaseHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"DNT":                       "1",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// DefaultUserAgents navegadores de escritorio y móviles para la rotación.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36 Edg/128.0.0.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:131.0) Gecko/20100101 Firefox/131.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.6 Safari/605.1.15",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 14.6; rv:130.0) Gecko/20100101 Firefox/130.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:130.0) Gecko/20100101 Firefox/130.0",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.6 Mobile/15E148 Safari/604.1",
	"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Mobile Safari/537.36",
	"Mozilla/5.0 (Linux; Android 14; SM-S921B) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Mobile Safari/537.36",
	"Mozilla/5.0 (iPad; CPU OS 17_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.6 Mobile/15E148 Safari/604.1",
}

// Provider elige un User-Agent al azar en cada llamada. Seguro para uso concurrente.
type Provider struct {
	mu      sync.Mutex
	rng     *rand.Rand
	agents  []string
	headers map[string]string
}

// Option configura un Provider.
type Option func(*Provider)

// WithSeed fija la semilla; la secuencia queda determinista.
func WithSeed(seed uint64) Option {
	return func(p *Provider) {
		p.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithUserAgents reemplaza la lista de rotación. Una lista vacía se ignora.
func WithUserAgents(agents []string) Option {
	return func(p *Provider) {
		if len(agents) > 0 {
			p.agents = append([]string(nil), agents...)
		}
	}
}

// WithHeaders reemplaza los headers base.
func WithHeaders(h map[string]string) Option {
	return func(p *Provider) {
		p.headers = copyMap(h)
	}
}

// New crea un Provider con DefaultUserAgents y BaseHeaders.
func New(opts ...Option) *Provider {
	p := &Provider{
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		agents:  DefaultUserAgents,
		headers: copyMap(BaseHeaders),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Next retorna una identidad nueva; el mapa de headers es una copia.
func (p *Provider) Next() domain.Identity {
	p.mu.Lock()
	ua := p.agents[p.rng.IntN(len(p.agents))]
	p.mu.Unlock()

	return domain.Identity{UserAgent: ua, Headers: copyMap(p.headers)}
}

// Static retorna siempre la misma identidad.
type Static struct {
	Identity domain.Identity
}

// NewStatic crea un Static con BaseHeaders y el User-Agent dado.
func NewStatic(userAgent string) *Static {
	return &Static{Identity: domain.Identity{UserAgent: userAgent, Headers: copyMap(BaseHeaders)}}
}

// Next implementa ports.IdentityProvider.
func (s *Static) Next() domain.Identity {
	return domain.Identity{UserAgent: s.Identity.UserAgent, Headers: copyMap(s.Identity.Headers)}
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
