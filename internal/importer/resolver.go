package importer

import (
	"strings"

	"catalog-import-service/internal/models"
)

// categoryEntry is one node of the flattened category tree together with the
// lowercased names it can be found by.
type categoryEntry struct {
	category    *models.Category
	searchNames []string
}

// Resolver maps free-text category and unit names onto catalog records.
// It works over an immutable snapshot taken at the start of a run.
type Resolver struct {
	categories []categoryEntry
	units      []models.Unit
}

// NewResolver flattens the category tree once, depth-first with parents
// before children. Flatten order is the tie-break order for lookups.
func NewResolver(categories []models.Category, units []models.Unit) *Resolver {
	return &Resolver{
		categories: flattenCategories(categories),
		units:      units,
	}
}

func flattenCategories(roots []models.Category) []categoryEntry {
	var out []categoryEntry

	stack := make([]*models.Category, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, &roots[i])
	}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		out = append(out, categoryEntry{category: node, searchNames: searchNames(node)})

		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, &node.Children[i])
		}
	}
	return out
}

func searchNames(c *models.Category) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		names = append(names, s)
	}
	add(c.Name.Display())
	for _, r := range c.Name.Renderings() {
		add(r)
	}
	return names
}

// ResolveCategory finds a category by exact name in any language, falling
// back to a substring match in either direction. Returns nil when nothing matches.
func (r *Resolver) ResolveCategory(name string) *models.Category {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return nil
	}

	for _, e := range r.categories {
		for _, s := range e.searchNames {
			if s == query {
				return e.category
			}
		}
	}

	for _, e := range r.categories {
		for _, s := range e.searchNames {
			if strings.Contains(s, query) || strings.Contains(query, s) {
				return e.category
			}
		}
	}
	return nil
}

// ResolveUnit finds a unit by exact name or short code. There is no partial
// match: "Box" and "Boxes" are different units.
func (r *Resolver) ResolveUnit(name string) *models.Unit {
	query := strings.TrimSpace(name)
	if query == "" {
		return nil
	}
	for i := range r.units {
		u := &r.units[i]
		if strings.EqualFold(strings.TrimSpace(u.Name), query) || strings.EqualFold(strings.TrimSpace(u.ShortCode), query) {
			return u
		}
	}
	return nil
}

// CategoryByID returns the category with the given id from the snapshot
func (r *Resolver) CategoryByID(id string) *models.Category {
	for _, e := range r.categories {
		if e.category.ID == id {
			return e.category
		}
	}
	return nil
}

// UnitByID returns the unit with the given id from the snapshot
func (r *Resolver) UnitByID(id string) *models.Unit {
	for i := range r.units {
		if r.units[i].ID == id {
			return &r.units[i]
		}
	}
	return nil
}
