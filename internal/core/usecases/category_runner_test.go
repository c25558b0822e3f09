// internal/core/usecases/category_runner_test.go
package usecases

import (
	"context"
	"errors"
	"testing"

	"phoneprobe/internal/core/domain"
	"phoneprobe/internal/core/ports"
	"phoneprobe/internal/testutil"
)

func runnerTargets() []domain.Target {
	return []domain.Target{
		domain.NewTarget("social", "first", "https://first.test/{phone}"),
		domain.NewTarget("social", "second", "https://second.test/?q={phone}"),
		domain.NewTarget("social", "third", "https://third.test/{phone}"),
	}
}

func TestCategoryRunner_SequentialCatalogOrder(t *testing.T) {
	mock := testutil.NewMockTransport().
		Script("https://second.test/?q=+15551234567", testutil.Status(200))
	prober := newTestProber(t, mock, fastSettings())
	n := &recordingNotifier{}
	runner := NewCategoryRunner(CategoryRunnerOptions{Prober: prober, Notifier: n})

	r := runner.Run(context.Background(), "social", runnerTargets(), testutil.FixturePhone)

	testutil.AssertEqual(t, r.State, domain.CategoryCompleted, "state")
	testutil.AssertEqual(t, r.Expected, 3, "expected")
	testutil.AssertLen(t, r.Outcomes, 3, "one outcome per target")
	testutil.AssertEqual(t, r.Outcomes[0].Source, "first", "order 0")
	testutil.AssertEqual(t, r.Outcomes[1].Source, "second", "order 1")
	testutil.AssertEqual(t, r.Outcomes[2].Source, "third", "order 2")
	testutil.AssertTrue(t, r.Outcomes[1].Found, "second found")
	testutil.AssertEqual(t, r.FoundCount(), 1, "found count")
	testutil.AssertEqual(t, r.Outcomes[1].URL, "https://second.test/?q=+15551234567", "placeholder substituted")
	testutil.AssertEqual(t, mock.PeakInFlight(), 1, "strictly sequential")
	testutil.AssertEqual(t, n.Count(ports.EventTypeProbeCompleted), 3, "probe events")
}

func TestCategoryRunner_RecordsSite(t *testing.T) {
	prober := proberFunc(func(ctx context.Context, url string) (domain.Outcome, error) {
		return domain.NewResponseOutcome("", url, 200, 1), nil
	})
	runner := NewCategoryRunner(CategoryRunnerOptions{Prober: prober})
	targets := []domain.Target{
		domain.NewTarget("social", "facebook", "https://www.facebook.com/search/top/?q={phone}"),
		domain.NewTarget("social", "bbc", "https://news.bbc.co.uk/{phone}"),
		domain.NewTarget("social", "dialer", "tel:{phone}"),
	}

	r := runner.Run(context.Background(), "social", targets, testutil.FixturePhone)

	testutil.AssertLen(t, r.Outcomes, 3, "outcomes")
	testutil.AssertEqual(t, r.Outcomes[0].Site, "facebook.com", "web site")
	testutil.AssertEqual(t, r.Outcomes[1].Site, "bbc.co.uk", "multi-label suffix")
	testutil.AssertEqual(t, r.Outcomes[2].Site, "", "non web scheme")
}

func TestCategoryRunner_ProbePanicIsRecorded(t *testing.T) {
	calls := 0
	prober := proberFunc(func(ctx context.Context, url string) (domain.Outcome, error) {
		calls++
		if calls == 2 {
			panic("boom")
		}
		return domain.NewResponseOutcome("", url, 404, 1), nil
	})
	runner := NewCategoryRunner(CategoryRunnerOptions{Prober: prober})

	r := runner.Run(context.Background(), "social", runnerTargets(), testutil.FixturePhone)

	testutil.AssertEqual(t, r.State, domain.CategoryCompleted, "loop continues")
	testutil.AssertLen(t, r.Outcomes, 3, "all targets recorded")
	testutil.AssertEqual(t, r.Outcomes[1].Status, domain.OutcomeUnreachable, "panic becomes unreachable")
	testutil.AssertEqual(t, r.Outcomes[1].FailureKind, domain.FailureInternal, "internal failure")
	testutil.AssertEqual(t, r.Outcomes[1].Source, "second", "source kept")
	testutil.AssertContains(t, r.Outcomes[1].Error, "boom", "panic value in error")
	testutil.AssertEqual(t, r.Outcomes[2].Status, domain.OutcomeNotFound, "next target probed")
}

func TestCategoryRunner_UnexpectedErrorIsRecorded(t *testing.T) {
	prober := proberFunc(func(ctx context.Context, url string) (domain.Outcome, error) {
		return domain.Outcome{}, errors.New("broken prober")
	})
	runner := NewCategoryRunner(CategoryRunnerOptions{Prober: prober})

	r := runner.Run(context.Background(), "social", runnerTargets(), testutil.FixturePhone)

	testutil.AssertEqual(t, r.State, domain.CategoryCompleted, "state")
	for _, o := range r.Outcomes {
		testutil.AssertEqual(t, o.FailureKind, domain.FailureInternal, o.Source)
	}
}

func TestCategoryRunner_CancelKeepsPartialOutcomes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	prober := proberFunc(func(ctx context.Context, url string) (domain.Outcome, error) {
		calls++
		if calls == 2 {
			cancel()
			return domain.Outcome{}, ctx.Err()
		}
		return domain.NewResponseOutcome("", url, 200, 1), nil
	})
	runner := NewCategoryRunner(CategoryRunnerOptions{Prober: prober})

	r := runner.Run(ctx, "social", runnerTargets(), testutil.FixturePhone)

	testutil.AssertEqual(t, r.State, domain.CategoryPartial, "state")
	testutil.AssertLen(t, r.Outcomes, 1, "outcomes before cancel")
	testutil.AssertEqual(t, r.Expected, 3, "expected")
	testutil.AssertEqual(t, calls, 2, "no probes after cancel")
	testutil.AssertNotEqual(t, r.Error, "", "partial reason")
}

func TestCategoryRunner_EmptyCategory(t *testing.T) {
	runner := NewCategoryRunner(CategoryRunnerOptions{Prober: proberFunc(nil)})

	r := runner.Run(context.Background(), "empty", nil, testutil.FixturePhone)

	testutil.AssertEqual(t, r.State, domain.CategoryCompleted, "state")
	testutil.AssertLen(t, r.Outcomes, 0, "no outcomes")
	testutil.AssertNotNil(t, r.Outcomes, "outcomes slice is never nil")
}
