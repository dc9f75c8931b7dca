package services

import (
	"orgchart-backend/domain/core/valueobjects"
)

// ManagerLookup resolves an employee's manager reference. The Hierarchy
// aggregate satisfies this; tests supply small fakes.
type ManagerLookup interface {
	ManagerOf(id valueobjects.EmployeeID) (valueobjects.EmployeeID, bool)
}

// CycleGuard answers ancestor queries against the manager forest. It is a
// pure query service used to reject reparent proposals that would make an
// employee a report of their own subordinate.
type CycleGuard struct {
	lookup ManagerLookup
}

// NewCycleGuard creates a cycle guard reading through the given lookup
func NewCycleGuard(lookup ManagerLookup) *CycleGuard {
	return &CycleGuard{lookup: lookup}
}

// IsAncestor reports whether candidateID appears anywhere on ofID's
// manager chain. The walk carries a visited set so malformed cyclic data
// terminates with false instead of looping.
func (g *CycleGuard) IsAncestor(candidateID, ofID valueobjects.EmployeeID) bool {
	if candidateID.IsZero() || ofID.IsZero() {
		return false
	}

	visited := make(map[valueobjects.EmployeeID]bool)
	current := ofID

	for {
		managerID, ok := g.lookup.ManagerOf(current)
		if !ok || managerID.IsZero() {
			return false
		}
		if managerID.Equals(candidateID) {
			return true
		}
		if visited[managerID] {
			// Cycle in the underlying data; candidate was not on it.
			return false
		}
		visited[managerID] = true
		current = managerID
	}
}
