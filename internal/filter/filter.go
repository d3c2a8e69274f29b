// Package filter narrows a project collection by free-text search and
// multi-select filters. Pure and order-preserving.
package filter

import (
	"strings"

	"roadmap/internal/domain"
)

// Filters holds the multi-select dimensions. An empty dimension means "no
// constraint from this dimension", never "match nothing". Dimensions combine
// with AND; values within a dimension combine with OR.
type Filters struct {
	Status       []string
	SoftwareType []string
	Priority     []string
}

// Empty reports whether no dimension constrains the collection.
func (f Filters) Empty() bool {
	return len(f.Status) == 0 && len(f.SoftwareType) == 0 && len(f.Priority) == 0
}

// Apply runs the narrowing pipeline: text search, then status, software
// type, and priority membership. Each stage operates on the output of the
// previous one and is skipped when its input constraint is empty.
func Apply(projects []domain.Project, searchTerm string, f Filters) []domain.Project {
	filtered := projects

	if searchTerm != "" {
		term := strings.ToLower(searchTerm)
		filtered = keep(filtered, func(p domain.Project) bool {
			return matchesTerm(p, term)
		})
	}
	if len(f.Status) > 0 {
		filtered = keep(filtered, func(p domain.Project) bool {
			return contains(f.Status, p.Status)
		})
	}
	if len(f.SoftwareType) > 0 {
		filtered = keep(filtered, func(p domain.Project) bool {
			return contains(f.SoftwareType, p.SoftwareType)
		})
	}
	if len(f.Priority) > 0 {
		filtered = keep(filtered, func(p domain.Project) bool {
			return contains(f.Priority, p.Priority)
		})
	}
	return filtered
}

func matchesTerm(p domain.Project, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tech := range p.Technologies {
		if strings.Contains(strings.ToLower(tech), term) {
			return true
		}
	}
	return false
}

func keep(projects []domain.Project, pred func(domain.Project) bool) []domain.Project {
	res := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if pred(p) {
			res = append(res, p)
		}
	}
	return res
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
