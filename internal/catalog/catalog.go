// internal/catalog/catalog.go
package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"phoneprobe/internal/core/domain"
	"phoneprobe/internal/platform/errors"
	"phoneprobe/internal/platform/validator"
)

// Source es un template de endpoint con nombre.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Category agrupa sources en orden.
type Category struct {
	Name    string   `yaml:"name"`
	Title   string   `yaml:"title,omitempty"`
	Sources []Source `yaml:"sources"`
}

// Catalog es el conjunto validado de categorías de una corrida.
// Es de solo lectura tras New; los workers lo comparten sin locks.
type Catalog struct {
	categories []Category
	index      map[string]int
	targets    map[string][]domain.Target
}

// New valida las categorías y retorna un catálogo inmutable.
// Reporta todos los problemas juntos, envueltos en domain.ErrInvalidCatalog.
func New(categories []Category) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCatalog, domain.ErrEmptyCatalog)
	}

	var problems []error
	c := &Catalog{
		categories: make([]Category, 0, len(categories)),
		index:      make(map[string]int, len(categories)),
		targets:    make(map[string][]domain.Target, len(categories)),
	}

	for _, in := range categories {
		cat := Category{
			Name:    strings.TrimSpace(in.Name),
			Title:   strings.TrimSpace(in.Title),
			Sources: make([]Source, len(in.Sources)),
		}
		copy(cat.Sources, in.Sources)

		if !validator.IsCategoryKey(cat.Name) {
			problems = append(problems, fmt.Errorf("category %q: %w", in.Name, validator.ErrInvalidCategoryKey))
			continue
		}
		if _, dup := c.index[cat.Name]; dup {
			problems = append(problems, fmt.Errorf("category %q: %w", cat.Name, domain.ErrDuplicateCategory))
			continue
		}
		if cat.Title == "" {
			cat.Title = Humanize(cat.Name)
		}
		if len(cat.Sources) == 0 {
			problems = append(problems, fmt.Errorf("category %q: no sources", cat.Name))
			continue
		}

		seen := make(map[string]struct{}, len(cat.Sources))
		targets := make([]domain.Target, 0, len(cat.Sources))
		for i, src := range cat.Sources {
			src.Name = strings.TrimSpace(src.Name)
			src.URL = strings.TrimSpace(src.URL)
			cat.Sources[i] = src

			if !validator.IsDisplayName(src.Name) {
				problems = append(problems, fmt.Errorf("category %q source #%d: %w", cat.Name, i, validator.ErrInvalidName))
				continue
			}
			if _, dup := seen[src.Name]; dup {
				problems = append(problems, fmt.Errorf("category %q source %q: %w", cat.Name, src.Name, domain.ErrDuplicateSource))
				continue
			}
			seen[src.Name] = struct{}{}

			if err := validator.ValidateTemplate(src.URL, domain.Placeholder); err != nil {
				cause := domain.ErrInvalidTemplate
				if errors.Is(err, validator.ErrPlaceholderCount) {
					cause = fmt.Errorf("%w: %w", domain.ErrInvalidTemplate, domain.ErrMissingPlaceholder)
				}
				problems = append(problems, fmt.Errorf("category %q source %q: %w: %w", cat.Name, src.Name, cause, err))
				continue
			}
			targets = append(targets, domain.NewTarget(cat.Name, src.Name, src.URL))
		}

		c.index[cat.Name] = len(c.categories)
		c.categories = append(c.categories, cat)
		c.targets[cat.Name] = targets
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCatalog, errors.Join(problems...))
	}
	return c, nil
}

// MustNew es New para datos estáticos; hace panic si son inválidos.
func MustNew(categories []Category) *Catalog {
	c, err := New(categories)
	if err != nil {
		panic(err)
	}
	return c
}

// Categories retorna los nombres en orden de catálogo.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cat.Name
	}
	return out
}

// Targets retorna una copia de los targets de la categoría, nil si no existe.
func (c *Catalog) Targets(category string) []domain.Target {
	t, ok := c.targets[category]
	if !ok {
		return nil
	}
	out := make([]domain.Target, len(t))
	copy(out, t)
	return out
}

// Title retorna el nombre legible de la categoría.
func (c *Catalog) Title(category string) string {
	if i, ok := c.index[category]; ok {
		return c.categories[i].Title
	}
	return Humanize(category)
}

// Has indica si la categoría existe.
func (c *Catalog) Has(category string) bool {
	_, ok := c.index[category]
	return ok
}

// Len retorna el número de categorías.
func (c *Catalog) Len() int {
	return len(c.categories)
}

// TargetCount retorna el total de targets del catálogo.
func (c *Catalog) TargetCount() int {
	n := 0
	for _, t := range c.targets {
		n += len(t)
	}
	return n
}

// Snapshot retorna una copia profunda de las categorías.
func (c *Catalog) Snapshot() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{Name: cat.Name, Title: cat.Title, Sources: append([]Source(nil), cat.Sources...)}
	}
	return out
}

// Merge retorna un catálogo nuevo con ext aplicado. Las sources de una
// categoría existente se agregan al final, salvo que repitan nombre: en ese
// caso se reemplaza la URL en su lugar. Las categorías nuevas van al final.
func (c *Catalog) Merge(ext []Category) (*Catalog, error) {
	merged := c.Snapshot()
	pos := make(map[string]int, len(merged))
	for i, cat := range merged {
		pos[cat.Name] = i
	}

	for _, e := range ext {
		name := strings.TrimSpace(e.Name)
		i, ok := pos[name]
		if !ok {
			pos[name] = len(merged)
			merged = append(merged, Category{Name: name, Title: e.Title, Sources: append([]Source(nil), e.Sources...)})
			continue
		}
		if e.Title != "" {
			merged[i].Title = e.Title
		}
		for _, src := range e.Sources {
			replaced := false
			for j := range merged[i].Sources {
				if merged[i].Sources[j].Name == strings.TrimSpace(src.Name) {
					merged[i].Sources[j].URL = src.URL
					replaced = true
					break
				}
			}
			if !replaced {
				merged[i].Sources = append(merged[i].Sources, src)
			}
		}
	}
	return New(merged)
}

// Filter restringe el catálogo a names sin alterar el orden.
// Con names vacío retorna c.
func (c *Catalog) Filter(names []string) (*Catalog, error) {
	if len(names) == 0 {
		return c, nil
	}
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		if !c.Has(n) {
			return nil, fmt.Errorf("%w: %s (known: %s)", domain.ErrUnknownCategory, n, strings.Join(c.Categories(), ", "))
		}
		want[n] = struct{}{}
	}

	var kept []Category
	for _, cat := range c.Snapshot() {
		if _, ok := want[cat.Name]; ok {
			kept = append(kept, cat)
		}
	}
	return New(kept)
}

// Humanize convierte una clave en título: "social_networks" -> "Social Networks".
// Un Caser guarda estado; se crea uno por llamada.
func Humanize(key string) string {
	return cases.Title(language.English).String(strings.NewReplacer("_", " ", "-", " ").Replace(key))
}
