// internal/core/usecases/aggregator.go
package usecases

import (
	"phoneprobe/internal/core/domain"
	"phoneprobe/internal/core/ports"
)

// CategoryRef describe una categoría tal como aparece en el catálogo.
type CategoryRef struct {
	Name     string
	Title    string
	Expected int
}

// OrderOf retorna las referencias de cat en orden de catálogo.
func OrderOf(cat ports.Catalog) []CategoryRef {
	names := cat.Categories()
	order := make([]CategoryRef, len(names))
	for i, name := range names {
		order[i] = CategoryRef{Name: name, Title: cat.Title(name), Expected: len(cat.Targets(name))}
	}
	return order
}

// Aggregate construye el reporte final. No tiene efectos secundarios.
//
// Las categorías quedan en el orden de order; las que faltan en results se
// sustituyen por un marcador not_attempted. Si results trae una categoría
// repetida gana la primera; las que no están en order se agregan al final.
func Aggregate(meta domain.RunMeta, order []CategoryRef, results []domain.CategoryResult) *domain.Report {
	byName := make(map[string]domain.CategoryResult, len(results))
	for _, r := range results {
		if _, dup := byName[r.Category]; !dup {
			byName[r.Category] = r
		}
	}

	categories := make([]domain.CategoryResult, 0, len(order))
	used := make(map[string]bool, len(order))
	for _, ref := range order {
		if used[ref.Name] {
			continue
		}
		used[ref.Name] = true

		r, ok := byName[ref.Name]
		if !ok {
			r = domain.NewNotAttemptedCategory(ref.Name, ref.Title, ref.Expected)
		}
		if r.Title == "" {
			r.Title = ref.Title
		}
		if r.Outcomes == nil {
			r.Outcomes = []domain.Outcome{}
		}
		categories = append(categories, r)
	}

	for _, r := range results {
		if used[r.Category] {
			continue
		}
		used[r.Category] = true
		categories = append(categories, byName[r.Category])
	}

	report := &domain.Report{
		ID:         meta.ID,
		Identifier: meta.Identifier,
		StartedAt:  meta.StartedAt,
		FinishedAt: meta.FinishedAt,
		Canceled:   meta.Canceled,
		Categories: categories,
		Summary:    domain.Compute(categories),
	}
	if !meta.FinishedAt.IsZero() && !meta.StartedAt.IsZero() {
		report.Duration = meta.FinishedAt.Sub(meta.StartedAt)
	}
	return report
}
