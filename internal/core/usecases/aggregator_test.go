// internal/core/usecases/aggregator_test.go
package usecases

import (
	"testing"
	"time"

	"phoneprobe/internal/core/domain"
	"phoneprobe/internal/testutil"
)

func aggregatorOrder() []CategoryRef {
	return []CategoryRef{
		{Name: "a", Title: "A", Expected: 2},
		{Name: "b", Title: "B", Expected: 1},
		{Name: "c", Title: "C", Expected: 3},
	}
}

func completed(name string, outcomes ...domain.Outcome) domain.CategoryResult {
	return domain.CategoryResult{
		Category: name,
		State:    domain.CategoryCompleted,
		Outcomes: outcomes,
		Expected: len(outcomes),
	}
}

func TestAggregate_NormalizesOrder(t *testing.T) {
	meta := domain.NewRunMeta(testutil.FixturePhone)
	meta.FinishedAt = meta.StartedAt.Add(3 * time.Second)

	results := []domain.CategoryResult{
		completed("c", domain.NewResponseOutcome("c1", "u", 200, 1)),
		completed("a",
			domain.NewResponseOutcome("a1", "u", 404, 1),
			domain.NewUnreachableOutcome("a2", "u", 3, domain.FailureTimeout, nil),
		),
		domain.NewFailedCategory("b", "B", 1, domain.ErrCategoryPanic),
	}

	report := Aggregate(meta, aggregatorOrder(), results)

	testutil.AssertLen(t, report.Categories, 3, "categories")
	testutil.AssertEqual(t, report.Categories[0].Category, "a", "order 0")
	testutil.AssertEqual(t, report.Categories[1].Category, "b", "order 1")
	testutil.AssertEqual(t, report.Categories[2].Category, "c", "order 2")
	testutil.AssertEqual(t, report.Categories[0].Title, "A", "title filled from catalog")
	testutil.AssertEqual(t, report.Duration, 3*time.Second, "duration")
	testutil.AssertEqual(t, report.ID, meta.ID, "id")

	want := domain.Summary{
		Checked:     3,
		Found:       1,
		NotFound:    1,
		Unreachable: 1,
		Categories:  3,
		Completed:   2,
		Failed:      1,
	}
	testutil.AssertEqual(t, report.Summary, want, "summary")
}

func TestAggregate_MissingBecomesNotAttempted(t *testing.T) {
	meta := domain.NewRunMeta(testutil.FixturePhone)
	report := Aggregate(meta, aggregatorOrder(), []domain.CategoryResult{
		completed("b", domain.NewResponseOutcome("b1", "u", 200, 1)),
	})

	a, _ := report.Category("a")
	c, _ := report.Category("c")
	testutil.AssertEqual(t, a.State, domain.CategoryNotAttempted, "a")
	testutil.AssertEqual(t, a.Expected, 2, "a expected")
	testutil.AssertEqual(t, c.State, domain.CategoryNotAttempted, "c")
	testutil.AssertEqual(t, report.Summary.NotAttempted, 2, "summary")
	testutil.AssertEqual(t, report.Summary.Checked, 1, "checked")
}

func TestAggregate_DuplicatesAndExtras(t *testing.T) {
	meta := domain.NewRunMeta(testutil.FixturePhone)
	report := Aggregate(meta, aggregatorOrder()[:1], []domain.CategoryResult{
		completed("a", domain.NewResponseOutcome("first", "u", 200, 1)),
		completed("a", domain.NewResponseOutcome("second", "u", 200, 1)),
		completed("z", domain.NewResponseOutcome("z1", "u", 404, 1)),
	})

	testutil.AssertLen(t, report.Categories, 2, "duplicate dropped, extra kept")
	testutil.AssertEqual(t, report.Categories[0].Outcomes[0].Source, "first", "first wins")
	testutil.AssertEqual(t, report.Categories[1].Category, "z", "extra appended")
}

func TestAggregate_Pure(t *testing.T) {
	meta := domain.NewRunMeta(testutil.FixturePhone)
	results := []domain.CategoryResult{completed("a"), completed("b")}

	first := Aggregate(meta, aggregatorOrder(), results)
	second := Aggregate(meta, aggregatorOrder(), results)

	testutil.AssertEqual(t, second, first, "same input, same report")
	testutil.AssertEqual(t, results[0].Category, "a", "input untouched")
	testutil.AssertEqual(t, first.Duration, time.Duration(0), "unfinished run has no duration")
}

func TestOrderOf(t *testing.T) {
	cat := newTestCatalog(map[string]int{"a": 2, "b": 1}, "b", "a")

	order := OrderOf(cat)

	testutil.AssertLen(t, order, 2, "refs")
	testutil.AssertEqual(t, order[0].Name, "b", "catalog order")
	testutil.AssertEqual(t, order[0].Expected, 1, "b expected")
	testutil.AssertEqual(t, order[1].Expected, 2, "a expected")
	testutil.AssertEqual(t, order[1].Title, cat.Title("a"), "title")
}
