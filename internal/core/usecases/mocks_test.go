// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"phoneprobe/internal/catalog"
	"phoneprobe/internal/core/domain"
	"phoneprobe/internal/core/ports"
	"phoneprobe/internal/testutil"
)

// fastSettings evita esperas reales en los tests
func fastSettings() ProberSettings {
	return ProberSettings{Retries: 3, Timeout: time.Second, RetryDelay: time.Millisecond}
}

// proberFunc adapta una función a URLProber
type proberFunc func(ctx context.Context, url string) (domain.Outcome, error)

func (f proberFunc) Probe(ctx context.Context, url string) (domain.Outcome, error) {
	return f(ctx, url)
}

// countingIdentities entrega "ua-1", "ua-2", ... en orden
type countingIdentities struct {
	mu sync.Mutex
	n  int
}

func (c *countingIdentities) Next() domain.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return domain.Identity{
		UserAgent: fmt.Sprintf("ua-%d", c.n),
		Headers:   map[string]string{"Accept": "*/*"},
	}
}

// recordingNotifier guarda todos los eventos y ejecuta un hook opcional
type recordingNotifier struct {
	mu     sync.Mutex
	events []ports.Event
	hook   func(ports.Event)
	closed bool
}

func (r *recordingNotifier) Notify(ctx context.Context, event ports.Event) error {
	r.mu.Lock()
	r.events = append(r.events, event)
	hook := r.hook
	r.mu.Unlock()

	if hook != nil {
		hook(event)
	}
	return nil
}

func (r *recordingNotifier) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recordingNotifier) Events() []ports.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recordingNotifier) Count(t ports.EventType) int {
	n := 0
	for _, e := range r.Events() {
		if e.Type == t {
			n++
		}
	}
	return n
}

// newTestCatalog crea un catálogo con sources "<cat>1".."<cat>N" en https://<cat>N.test/{phone}
func newTestCatalog(sizes map[string]int, order ...string) *catalog.Catalog {
	cats := make([]catalog.Category, 0, len(order))
	for _, name := range order {
		c := catalog.Category{Name: name}
		for i := 1; i <= sizes[name]; i++ {
			src := fmt.Sprintf("%s%d", name, i)
			c.Sources = append(c.Sources, catalog.Source{
				Name: src,
				URL:  "https://" + src + ".test/{phone}",
			})
		}
		cats = append(cats, c)
	}
	return catalog.MustNew(cats)
}

// testURL retorna la URL resuelta de una source de newTestCatalog
func testURL(source string) string {
	return "https://" + source + ".test/" + testutil.FixturePhone
}

func newTestScheduler(cat ports.Catalog, transport ports.Transport, workers int, n ports.Notifier) *Scheduler {
	prober, err := NewProber(ProberOptions{
		Transport:  transport,
		Identities: &countingIdentities{},
		Settings:   fastSettings(),
	})
	if err != nil {
		panic(err)
	}
	s, err := NewScheduler(SchedulerOptions{
		Catalog:  cat,
		Prober:   prober,
		Workers:  workers,
		Notifier: n,
	})
	if err != nil {
		panic(err)
	}
	return s
}
