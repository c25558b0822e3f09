// internal/core/usecases/prober_test.go
package usecases

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"phoneprobe/internal/core/domain"
	"phoneprobe/internal/core/ports"
	"phoneprobe/internal/platform/errors"
	"phoneprobe/internal/platform/httpclient"
	"phoneprobe/internal/platform/logx"
	"phoneprobe/internal/testutil"
)

const probeURL = "https://example.test/+15551234567"

func newTestProber(t *testing.T, transport *testutil.MockTransport, settings ProberSettings) *Prober {
	t.Helper()
	p, err := NewProber(ProberOptions{
		Transport:  transport,
		Identities: &countingIdentities{},
		Settings:   settings,
	})
	testutil.AssertNoError(t, err, "new prober")
	return p
}

func TestNewProber_Validation(t *testing.T) {
	_, err := NewProber(ProberOptions{Settings: DefaultProberSettings()})
	testutil.AssertErrorIs(t, err, domain.ErrNoTransport, "nil transport")

	tests := []struct {
		name     string
		settings ProberSettings
	}{
		{"zero retries", ProberSettings{Retries: 0, Timeout: time.Second}},
		{"zero timeout", ProberSettings{Retries: 1}},
		{"negative delay", ProberSettings{Retries: 1, Timeout: time.Second, RetryDelay: -time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProber(ProberOptions{
				Transport: testutil.NewMockTransport(),
				Settings:  tt.settings,
			})
			testutil.AssertErrorIs(t, err, domain.ErrInvalidSettings, "invalid settings")
		})
	}
}

func TestDefaultProberSettings(t *testing.T) {
	s := DefaultProberSettings()
	testutil.AssertEqual(t, s.Retries, 3, "retries")
	testutil.AssertEqual(t, s.Timeout, 10*time.Second, "timeout")
	testutil.AssertEqual(t, s.RetryDelay, 2*time.Second, "retry delay")
	testutil.AssertNoError(t, s.Validate(), "defaults are valid")
}

func TestProber_FoundOnlyOn200(t *testing.T) {
	tests := []struct {
		status int
		want   domain.OutcomeStatus
	}{
		{200, domain.OutcomeFound},
		{201, domain.OutcomeNotFound},
		{204, domain.OutcomeNotFound},
		{301, domain.OutcomeNotFound},
		{403, domain.OutcomeNotFound},
		{404, domain.OutcomeNotFound},
		{429, domain.OutcomeNotFound},
		{500, domain.OutcomeNotFound},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			mock := testutil.NewMockTransport().Script(probeURL, testutil.Status(tt.status))
			p := newTestProber(t, mock, fastSettings())

			o, err := p.Probe(context.Background(), probeURL)

			testutil.AssertNoError(t, err, "probe")
			testutil.AssertEqual(t, o.Status, tt.want, "status")
			testutil.AssertEqual(t, o.Found, tt.status == 200, "found")
			testutil.AssertEqual(t, o.StatusCode, tt.status, "status code")
			testutil.AssertEqual(t, o.Attempts, 1, "any response stops the loop")
			testutil.AssertEqual(t, mock.Calls(probeURL), 1, "transport calls")
		})
	}
}

func TestProber_RetriesTransportErrors(t *testing.T) {
	mock := testutil.NewMockTransport().Script(probeURL,
		testutil.Fail(), testutil.Fail(), testutil.Status(200))
	p := newTestProber(t, mock, fastSettings())

	o, err := p.Probe(context.Background(), probeURL)

	testutil.AssertNoError(t, err, "probe")
	testutil.AssertEqual(t, mock.Calls(probeURL), 3, "fail, fail, success")
	testutil.AssertEqual(t, o.Attempts, 3, "attempts")
	testutil.AssertTrue(t, o.Found, "third attempt found")
	testutil.AssertEqual(t, o.Error, "", "no error on success")
}

func TestProber_AllAttemptsFail(t *testing.T) {
	for _, retries := range []int{1, 2, 3, 5} {
		mock := testutil.NewMockTransport().Script(probeURL, testutil.Fail())
		settings := fastSettings()
		settings.Retries = retries
		p := newTestProber(t, mock, settings)

		o, err := p.Probe(context.Background(), probeURL)

		testutil.AssertNoError(t, err, "exhausted retries are not an error")
		testutil.AssertEqual(t, mock.Calls(probeURL), retries, "one call per attempt")
		testutil.AssertEqual(t, o.Status, domain.OutcomeUnreachable, "status")
		testutil.AssertEqual(t, o.StatusCode, 0, "no status code")
		testutil.AssertFalse(t, o.Found, "not found")
		testutil.AssertEqual(t, o.Attempts, retries, "attempts")
		testutil.AssertEqual(t, o.FailureKind, domain.FailureUnknown, "failure kind")
		testutil.AssertEqual(t, o.Error, testutil.ErrMockTransport.Error(), "last error")
	}
}

func TestProber_NonHTTPErrorIsRetried(t *testing.T) {
	mock := testutil.NewMockTransport().Script(probeURL, testutil.Status(503))
	p := newTestProber(t, mock, fastSettings())

	o, err := p.Probe(context.Background(), probeURL)

	testutil.AssertNoError(t, err, "probe")
	testutil.AssertEqual(t, mock.Calls(probeURL), 1, "5xx is a response, not retried")
	testutil.AssertEqual(t, o.Status, domain.OutcomeNotFound, "status")
}

func TestProber_FreshIdentityPerAttempt(t *testing.T) {
	mock := testutil.NewMockTransport().Script(probeURL, testutil.Fail())
	p := newTestProber(t, mock, fastSettings())

	_, _ = p.Probe(context.Background(), probeURL)

	headers := mock.Headers(probeURL)
	testutil.AssertLen(t, headers, 3, "one header set per attempt")
	testutil.AssertEqual(t, headers[0]["User-Agent"], "ua-1", "first attempt")
	testutil.AssertEqual(t, headers[1]["User-Agent"], "ua-2", "second attempt")
	testutil.AssertEqual(t, headers[2]["User-Agent"], "ua-3", "third attempt")
	testutil.AssertEqual(t, headers[0]["Accept"], "*/*", "base headers")
}

func TestProber_PerAttemptTimeout(t *testing.T) {
	mock := testutil.NewMockTransport()
	mock.Delay = 200 * time.Millisecond
	p := newTestProber(t, mock, ProberSettings{
		Retries:    2,
		Timeout:    5 * time.Millisecond,
		RetryDelay: time.Millisecond,
	})

	o, err := p.Probe(context.Background(), probeURL)

	testutil.AssertNoError(t, err, "attempt timeouts are transport errors")
	testutil.AssertEqual(t, mock.Calls(probeURL), 2, "both attempts ran")
	testutil.AssertEqual(t, o.Status, domain.OutcomeUnreachable, "status")
	testutil.AssertEqual(t, o.FailureKind, domain.FailureTimeout, "failure kind")
}

func TestProber_CanceledBeforeStart(t *testing.T) {
	mock := testutil.NewMockTransport()
	p := newTestProber(t, mock, fastSettings())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Probe(ctx, probeURL)

	testutil.AssertErrorIs(t, err, context.Canceled, "context error")
	testutil.AssertEqual(t, mock.TotalCalls(), 0, "no attempts")
}

func TestProber_CanceledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mock := testutil.NewMockTransport().Script(probeURL, testutil.Fail())
	p := newTestProber(t, mock, ProberSettings{
		Retries:    3,
		Timeout:    time.Second,
		RetryDelay: time.Minute,
	})

	go func() {
		for mock.TotalCalls() == 0 {
			time.Sleep(time.Millisecond)
		}
		cancel()
	}()

	start := time.Now()
	_, err := p.Probe(ctx, probeURL)

	testutil.AssertTrue(t, errors.Is(err, context.Canceled), "context error")
	testutil.AssertEqual(t, mock.Calls(probeURL), 1, "no attempts after cancel")
	testutil.AssertTrue(t, time.Since(start) < 10*time.Second, "returns promptly")
}

func TestProber_CanceledDuringAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mock := testutil.NewMockTransport()
	mock.OnCall = func(string) { cancel() }
	p := newTestProber(t, mock, fastSettings())

	_, err := p.Probe(ctx, probeURL)

	testutil.AssertErrorIs(t, err, context.Canceled, "context error")
	testutil.AssertEqual(t, mock.Calls(probeURL), 1, "single attempt")
}

// countingThrottle cuenta los permisos pedidos y puede demorar o fallar
type countingThrottle struct {
	mu    sync.Mutex
	calls int
	delay time.Duration
	err   error
}

func (c *countingThrottle) Wait(ctx context.Context) error {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	return sleepCtx(ctx, c.delay)
}

func (c *countingThrottle) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func newThrottledProber(t *testing.T, transport ports.Transport, throttle ports.Throttle, settings ProberSettings) *Prober {
	t.Helper()
	p, err := NewProber(ProberOptions{
		Transport: transport,
		Throttle:  throttle,
		Settings:  settings,
	})
	testutil.AssertNoError(t, err, "new prober")
	return p
}

func TestProber_ThrottleOncePerAttempt(t *testing.T) {
	mock := testutil.NewMockTransport().Script(probeURL, testutil.Fail(), testutil.Fail(), testutil.Status(200))
	throttle := &countingThrottle{}
	p := newThrottledProber(t, mock, throttle, fastSettings())

	o, err := p.Probe(context.Background(), probeURL)

	testutil.AssertNoError(t, err, "probe")
	testutil.AssertEqual(t, o.Status, domain.OutcomeFound, "found on third attempt")
	testutil.AssertEqual(t, throttle.Calls(), 3, "one token per attempt")
	testutil.AssertEqual(t, mock.Calls(probeURL), 3, "one call per attempt")
}

// La espera del throttle no consume el plazo del intento.
func TestProber_ThrottleOutsideAttemptTimeout(t *testing.T) {
	mock := testutil.NewMockTransport().Script(probeURL, testutil.Status(200))
	throttle := &countingThrottle{delay: 60 * time.Millisecond}
	settings := ProberSettings{Retries: 1, Timeout: 20 * time.Millisecond}
	p := newThrottledProber(t, mock, throttle, settings)

	o, err := p.Probe(context.Background(), probeURL)

	testutil.AssertNoError(t, err, "probe")
	testutil.AssertEqual(t, o.Status, domain.OutcomeFound, "found despite slow throttle")
	testutil.AssertEqual(t, o.Attempts, 1, "single attempt")
}

func TestProber_RateLimitedClient(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	// 4 req/s: el siguiente token llega después del plazo de 150ms
	client, err := httpclient.New(httpclient.Config{RateLimit: 4, RateLimitBurst: 1}, logx.NewNop())
	testutil.AssertNoError(t, err, "client")
	defer client.Close()

	settings := ProberSettings{Retries: 3, Timeout: 150 * time.Millisecond, RetryDelay: time.Millisecond}
	p := newThrottledProber(t, client, client, settings)

	for i := 0; i < 3; i++ {
		o, err := p.Probe(context.Background(), fmt.Sprintf("%s/%d", server.URL, i))
		testutil.AssertNoError(t, err, "probe")
		testutil.AssertEqual(t, o.Status, domain.OutcomeFound, "throttled endpoint is found")
		testutil.AssertEqual(t, o.Attempts, 1, "no spurious failed attempts")
	}
	testutil.AssertEqual(t, hits.Load(), int32(3), "one request per probe")
}

func TestProber_ThrottleRejection(t *testing.T) {
	mock := testutil.NewMockTransport()
	throttle := &countingThrottle{err: fmt.Errorf("%w: refused", errors.ErrRateLimit)}
	p := newThrottledProber(t, mock, throttle, fastSettings())

	o, err := p.Probe(context.Background(), probeURL)

	testutil.AssertNoError(t, err, "rejection is an outcome")
	testutil.AssertEqual(t, o.Status, domain.OutcomeUnreachable, "unreachable")
	testutil.AssertEqual(t, o.FailureKind, domain.FailureRateLimit, "kind")
	testutil.AssertEqual(t, o.Attempts, 0, "no attempt made")
	testutil.AssertEqual(t, mock.TotalCalls(), 0, "transport untouched")
}

// Un token que no llega antes del deadline de la corrida cancela el probe.
func TestProber_ThrottleBeyondRunDeadline(t *testing.T) {
	mock := testutil.NewMockTransport()
	throttle := &countingThrottle{err: fmt.Errorf("%w: would exceed context deadline", errors.ErrRateLimit)}
	p := newThrottledProber(t, mock, throttle, fastSettings())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := p.Probe(ctx, probeURL)

	testutil.AssertErrorIs(t, err, context.DeadlineExceeded, "run deadline")
	testutil.AssertEqual(t, mock.TotalCalls(), 0, "transport untouched")
}
