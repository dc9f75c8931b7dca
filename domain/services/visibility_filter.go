package services

import (
	"strings"

	"orgchart-backend/domain/core/entities"
)

// VisibilityCriteria is the current search/filter state: free text matched
// against name and designation, and an exact team filter. Zero criteria
// leave everything visible.
type VisibilityCriteria struct {
	Query string
	Team  string
}

// IsEmpty reports whether the criteria filter nothing out
func (c VisibilityCriteria) IsEmpty() bool {
	return strings.TrimSpace(c.Query) == "" && c.Team == ""
}

// VisibilityFilter selects the subset of employees that should be visible
// in the chart for the current criteria.
type VisibilityFilter struct{}

// NewVisibilityFilter creates a visibility filter
func NewVisibilityFilter() *VisibilityFilter {
	return &VisibilityFilter{}
}

// Visible returns the employees passing the criteria, preserving input
// order
func (f *VisibilityFilter) Visible(employees []*entities.Employee, criteria VisibilityCriteria) []*entities.Employee {
	if criteria.IsEmpty() {
		out := make([]*entities.Employee, len(employees))
		copy(out, employees)
		return out
	}

	query := strings.ToLower(strings.TrimSpace(criteria.Query))
	out := make([]*entities.Employee, 0, len(employees))
	for _, e := range employees {
		if criteria.Team != "" && e.Team() != criteria.Team {
			continue
		}
		if query != "" && !matchesQuery(e, query) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesQuery(e *entities.Employee, query string) bool {
	return strings.Contains(strings.ToLower(e.Name()), query) ||
		strings.Contains(strings.ToLower(e.Designation()), query)
}
