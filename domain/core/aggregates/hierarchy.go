package aggregates

import (
	"sort"
	"sync"

	"orgchart-backend/domain/core/entities"
	"orgchart-backend/domain/core/valueobjects"
	pkgerrors "orgchart-backend/pkg/errors"
)

// Hierarchy is the aggregate root for the organization forest.
// It is the single source of truth for employees and their manager links:
// every other component reads through it, and SetManager is the only way
// to change a manager reference.
//
// The aggregate does not enforce acyclicity on its own; callers validate
// moves with the cycle guard before mutating. It does guard against the
// trivially invalid cases (unknown employee, unknown manager, self-manage).
type Hierarchy struct {
	mu             sync.RWMutex
	organizationID string
	employees      map[valueobjects.EmployeeID]*entities.Employee
	version        uint64
}

// NewHierarchy creates an empty hierarchy for an organization
func NewHierarchy(organizationID string) *Hierarchy {
	return &Hierarchy{
		organizationID: organizationID,
		employees:      make(map[valueobjects.EmployeeID]*entities.Employee),
	}
}

// OrganizationID returns the owning organization's identifier
func (h *Hierarchy) OrganizationID() string {
	return h.organizationID
}

// Replace swaps the entire employee collection, used on (re)load from the
// remote source. Duplicate IDs are rejected wholesale so a bad load never
// leaves the store half-populated.
func (h *Hierarchy) Replace(employees []*entities.Employee) error {
	next := make(map[valueobjects.EmployeeID]*entities.Employee, len(employees))
	for _, e := range employees {
		if _, exists := next[e.ID()]; exists {
			return pkgerrors.NewConflictError("duplicate employee ID: " + e.ID().String())
		}
		next[e.ID()] = e
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.employees = next
	h.version++
	return nil
}

// Add inserts a single employee
func (h *Hierarchy) Add(e *entities.Employee) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.employees[e.ID()]; exists {
		return pkgerrors.NewConflictError("employee already exists: " + e.ID().String())
	}
	h.employees[e.ID()] = e
	h.version++
	return nil
}

// Employee retrieves a single employee by ID
func (h *Hierarchy) Employee(id valueobjects.EmployeeID) (*entities.Employee, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e, ok := h.employees[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("employee")
	}
	return e, nil
}

// Contains reports whether an employee exists in the hierarchy
func (h *Hierarchy) Contains(id valueobjects.EmployeeID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.employees[id]
	return ok
}

// ManagerOf returns the manager reference for an employee. The second
// return is false when the employee itself is unknown. A zero manager ID
// with ok=true marks a root.
func (h *Hierarchy) ManagerOf(id valueobjects.EmployeeID) (valueobjects.EmployeeID, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e, ok := h.employees[id]
	if !ok {
		return valueobjects.EmployeeID{}, false
	}
	return e.ManagerID(), true
}

// Employees returns the full employee collection
func (h *Hierarchy) Employees() []*entities.Employee {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*entities.Employee, 0, len(h.employees))
	for _, e := range h.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID().String() < out[j].ID().String()
	})
	return out
}

// Roots returns every employee without a manager
func (h *Hierarchy) Roots() []*entities.Employee {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*entities.Employee, 0)
	for _, e := range h.employees {
		if e.IsRoot() {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID().String() < out[j].ID().String()
	})
	return out
}

// Teams returns the distinct non-empty team names, sorted
func (h *Hierarchy) Teams() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[string]bool)
	for _, e := range h.employees {
		if e.Team() != "" {
			seen[e.Team()] = true
		}
	}

	teams := make([]string, 0, len(seen))
	for team := range seen {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

// SetManager is the single mutation entry point for manager links. It
// returns the previous manager reference so a failed remote write can be
// compensated with an exact revert.
func (h *Hierarchy) SetManager(id, managerID valueobjects.EmployeeID) (valueobjects.EmployeeID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.employees[id]
	if !ok {
		return valueobjects.EmployeeID{}, pkgerrors.NewNotFoundError("employee")
	}
	if !managerID.IsZero() {
		if _, ok := h.employees[managerID]; !ok {
			return valueobjects.EmployeeID{}, pkgerrors.NewNotFoundError("manager")
		}
	}

	prev := e.ManagerID()
	if err := e.AssignManager(managerID); err != nil {
		return valueobjects.EmployeeID{}, err
	}
	h.version++
	return prev, nil
}

// Size returns the number of employees
func (h *Hierarchy) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.employees)
}

// Version returns a counter that bumps on every mutation. Chart
// recomputation uses it to detect that the forest changed.
func (h *Hierarchy) Version() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.version
}
