// internal/testutil/mocks.go
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Nota: Los mocks específicos de domain/ports están en sus respectivos paquetes
// Este archivo contiene solo utilidades genéricas sin dependencias circulares

// ErrMockTransport es el error de transporte por defecto del mock.
var ErrMockTransport = errors.New("mock transport failure")

// Step es una respuesta programada: un código o un error.
type Step struct {
	Status int
	Err    error
}

// Status programa una respuesta HTTP.
func Status(code int) Step { return Step{Status: code} }

// Fail programa un error de transporte.
func Fail() Step { return Step{Err: ErrMockTransport} }

// MockTransport simula el transporte HTTP con respuestas programadas por URL.
// Cuando una URL agota su guion se repite el último paso.
type MockTransport struct {
	mu       sync.Mutex
	scripts  map[string][]Step
	calls    map[string]int
	headers  map[string][]map[string]string
	order    []string
	inFlight int
	peak     int

	// Default respuesta para URLs sin guion
	Default Step

	// Delay latencia simulada por llamada; respeta la cancelación del ctx
	Delay time.Duration

	// OnCall se invoca (sin lock) antes de responder
	OnCall func(url string)
}

// NewMockTransport crea un mock que responde 404 por defecto.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		scripts: make(map[string][]Step),
		calls:   make(map[string]int),
		headers: make(map[string][]map[string]string),
		Default: Status(404),
	}
}

// Script programa la secuencia de respuestas de una URL.
func (m *MockTransport) Script(url string, steps ...Step) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripts[url] = steps
	return m
}

// Get simula una petición GET.
func (m *MockTransport) Get(ctx context.Context, url string, headers map[string]string) (int, error) {
	m.mu.Lock()
	n := m.calls[url]
	m.calls[url] = n + 1
	m.headers[url] = append(m.headers[url], copyHeaders(headers))
	m.order = append(m.order, url)
	m.inFlight++
	if m.inFlight > m.peak {
		m.peak = m.inFlight
	}
	step := m.Default
	if script, ok := m.scripts[url]; ok && len(script) > 0 {
		if n < len(script) {
			step = script[n]
		} else {
			step = script[len(script)-1]
		}
	}
	hook := m.OnCall
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if hook != nil {
		hook(url)
	}

	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if step.Err != nil {
		return 0, step.Err
	}
	return step.Status, nil
}

// Calls retorna cuántas veces se pidió una URL.
func (m *MockTransport) Calls(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[url]
}

// TotalCalls retorna el total de llamadas.
func (m *MockTransport) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

// Order retorna las URLs en el orden en que se pidieron.
func (m *MockTransport) Order() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Headers retorna las cabeceras enviadas en cada llamada a una URL.
func (m *MockTransport) Headers(url string) []map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.headers[url]
}

// PeakInFlight retorna el máximo de llamadas simultáneas observado.
func (m *MockTransport) PeakInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.peak
}

func copyHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
