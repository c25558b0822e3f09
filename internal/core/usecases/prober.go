// internal/core/usecases/prober.go
package usecases

import (
	"context"
	"fmt"
	"time"

	"phoneprobe/internal/core/domain"
	"phoneprobe/internal/core/ports"
	"phoneprobe/internal/platform/errors"
	"phoneprobe/internal/platform/logx"
	"phoneprobe/internal/platform/metrics"
)

// Valores por defecto del prober.
const (
	DefaultRetries    = 3
	DefaultTimeout    = 10 * time.Second
	DefaultRetryDelay = 2 * time.Second
)

// ProberSettings configura los reintentos de cada target.
type ProberSettings struct {
	// Retries número total de intentos (mínimo 1)
	Retries int

	// Timeout límite de cada intento
	Timeout time.Duration

	// RetryDelay espera fija entre intentos fallidos
	RetryDelay time.Duration
}

// DefaultProberSettings retorna la configuración por defecto.
func DefaultProberSettings() ProberSettings {
	return ProberSettings{
		Retries:    DefaultRetries,
		Timeout:    DefaultTimeout,
		RetryDelay: DefaultRetryDelay,
	}
}

// Validate verifica que la configuración sea usable.
func (s ProberSettings) Validate() error {
	if s.Retries < 1 {
		return fmt.Errorf("%w: retries must be >= 1, got %d", domain.ErrInvalidSettings, s.Retries)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", domain.ErrInvalidSettings, s.Timeout)
	}
	if s.RetryDelay < 0 {
		return fmt.Errorf("%w: retry delay cannot be negative, got %s", domain.ErrInvalidSettings, s.RetryDelay)
	}
	return nil
}

// URLProber prueba una URL ya resuelta.
type URLProber interface {
	Probe(ctx context.Context, url string) (domain.Outcome, error)
}

// Prober ejecuta el ciclo de intentos contra un Transport.
type Prober struct {
	transport  ports.Transport
	identities ports.IdentityProvider
	throttle   ports.Throttle
	settings   ProberSettings
	logger     logx.Logger
	metrics    *metrics.Recorder
}

// ProberOptions configura el prober.
type ProberOptions struct {
	Transport  ports.Transport
	Identities ports.IdentityProvider
	Throttle   ports.Throttle
	Settings   ProberSettings
	Logger     logx.Logger
	Metrics    *metrics.Recorder
}

// NewProber crea un prober. Identities, Throttle, Logger y Metrics son opcionales.
func NewProber(opts ProberOptions) (*Prober, error) {
	if opts.Transport == nil {
		return nil, domain.ErrNoTransport
	}
	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}
	if opts.Identities == nil {
		opts.Identities = noIdentity{}
	}
	if opts.Logger == nil {
		opts.Logger = logx.NewNop()
	}

	return &Prober{
		transport:  opts.Transport,
		identities: opts.Identities,
		throttle:   opts.Throttle,
		settings:   opts.Settings,
		logger:     opts.Logger.With("component", "prober"),
		metrics:    opts.Metrics,
	}, nil
}

// Settings retorna la configuración efectiva.
func (p *Prober) Settings() ProberSettings {
	return p.settings
}

// Probe prueba la URL hasta obtener una respuesta o agotar los intentos.
// Si ctx se cancela retorna el error del contexto y ningún outcome.
func (p *Prober) Probe(ctx context.Context, url string) (domain.Outcome, error) {
	start := time.Now()
	var last domain.AttemptResult

	for attempt := 1; attempt <= p.settings.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return domain.Outcome{}, err
		}

		if err := p.wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return domain.Outcome{}, ctxErr
			}
			o := domain.NewUnreachableOutcome("", url, attempt-1, domain.FailureRateLimit, err)
			o.Duration = time.Since(start)
			return o, nil
		}

		last = p.attempt(ctx, url)

		if last.Completed() {
			p.logger.Debug("probe answered",
				"url", url,
				"status", last.StatusCode,
				"attempt", attempt,
			)
			o := domain.NewResponseOutcome("", url, last.StatusCode, attempt)
			o.Duration = time.Since(start)
			return o, nil
		}

		// El fallo puede deberse a la cancelación del padre.
		if err := ctx.Err(); err != nil {
			return domain.Outcome{}, err
		}

		p.logger.Debug("probe attempt failed",
			"url", url,
			"attempt", attempt,
			"of", p.settings.Retries,
			"error", last.Err.Error(),
		)

		if attempt < p.settings.Retries {
			if err := sleepCtx(ctx, p.settings.RetryDelay); err != nil {
				return domain.Outcome{}, err
			}
		}
	}

	kind := domain.FailureKind(errors.Classify(last.Err))
	o := domain.NewUnreachableOutcome("", url, p.settings.Retries, kind, last.Err)
	o.Duration = time.Since(start)
	return o, nil
}

// wait toma un permiso del throttle con el contexto del padre, antes de que
// empiece a correr el plazo del intento.
func (p *Prober) wait(ctx context.Context) error {
	if p.throttle == nil {
		return nil
	}
	err := p.throttle.Wait(ctx)
	if err == nil {
		return nil
	}
	// El permiso llegaría después del deadline de la corrida: esperar a que termine.
	if _, ok := ctx.Deadline(); ok && errors.Is(err, errors.ErrRateLimit) {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

// attempt realiza un único GET con identidad fresca y timeout propio.
func (p *Prober) attempt(ctx context.Context, url string) domain.AttemptResult {
	identity := p.identities.Next()

	attemptCtx, cancel := context.WithTimeout(ctx, p.settings.Timeout)
	defer cancel()

	p.metrics.AttemptStarted()
	start := time.Now()
	status, err := p.transport.Get(attemptCtx, url, identity.HeaderMap())
	elapsed := time.Since(start)

	switch {
	case err == nil:
		p.metrics.AttemptFinished(metrics.AttemptResponse, elapsed)
		res := domain.Response(status)
		res.Duration = elapsed
		return res
	case ctx.Err() != nil:
		p.metrics.AttemptFinished(metrics.AttemptCanceled, elapsed)
	default:
		p.metrics.AttemptFinished(metrics.AttemptError, elapsed)
	}

	res := domain.TransportError(err)
	res.Duration = elapsed
	return res
}

// sleepCtx espera d o hasta que ctx se cancele.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type noIdentity struct{}

func (noIdentity) Next() domain.Identity { return domain.Identity{} }
