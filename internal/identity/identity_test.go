// internal/identity/identity_test.go
package identity

import (
	"sync"
	"testing"

	"phoneprobe/internal/testutil"
)

func TestProvider_NextUsesPoolAndHeaders(t *testing.T) {
	p := New()

	for i := 0; i < 50; i++ {
		id := p.Next()
		testutil.AssertContains(t, DefaultUserAgents, id.UserAgent, "user agent from pool")
		testutil.AssertEqual(t, id.Headers["Accept-Language"], "en-US,en;q=0.5", "accept-language")
		testutil.AssertEqual(t, id.Headers["DNT"], "1", "dnt")
		testutil.AssertLen(t, id.Headers, len(BaseHeaders), "header count")
	}
}

func TestProvider_SeededIsDeterministic(t *testing.T) {
	a := New(WithSeed(42))
	b := New(WithSeed(42))

	for i := 0; i < 20; i++ {
		testutil.AssertEqual(t, a.Next().UserAgent, b.Next().UserAgent, "same seed, same sequence")
	}
}

func TestProvider_Rotates(t *testing.T) {
	p := New(WithSeed(7))
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[p.Next().UserAgent] = true
	}
	testutil.AssertTrue(t, len(seen) > 1, "identity should rotate")
}

func TestProvider_HeadersAreCopies(t *testing.T) {
	p := New()
	id := p.Next()
	id.Headers["DNT"] = "0"

	testutil.AssertEqual(t, p.Next().Headers["DNT"], "1", "provider headers unaffected")
	testutil.AssertEqual(t, BaseHeaders["DNT"], "1", "base headers unaffected")
}

func TestProvider_Options(t *testing.T) {
	p := New(WithUserAgents(testutil.FixtureUserAgents), WithHeaders(map[string]string{"X-Test": "1"}))

	id := p.Next()
	testutil.AssertContains(t, testutil.FixtureUserAgents, id.UserAgent, "custom pool")
	testutil.AssertEqual(t, id.Headers["X-Test"], "1", "custom headers")
	for i := 0; i < 10; i++ {
		testutil.AssertContains(t, testutil.FixtureUserAgents, p.Next().UserAgent, "custom pool only")
	}

	p = New(WithUserAgents(nil))
	testutil.AssertContains(t, DefaultUserAgents, p.Next().UserAgent, "empty pool ignored")
}

func TestProvider_Concurrent(t *testing.T) {
	p := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = p.Next()
			}
		}()
	}
	wg.Wait()
}

func TestStatic(t *testing.T) {
	s := NewStatic("fixed/1.0")
	a, b := s.Next(), s.Next()

	testutil.AssertEqual(t, a.UserAgent, "fixed/1.0", "fixed ua")
	testutil.AssertEqual(t, b.UserAgent, "fixed/1.0", "fixed ua again")
	a.Headers["DNT"] = "0"
	testutil.AssertEqual(t, s.Next().Headers["DNT"], "1", "static headers copied")
}
