package entities

import (
	"time"

	"orgchart-backend/domain/core/valueobjects"
	pkgerrors "orgchart-backend/pkg/errors"
)

// Employee is a node in the organization forest.
// Each employee references at most one manager; a zero manager reference
// marks the employee as a root of its tree.
type Employee struct {
	id          valueobjects.EmployeeID
	name        string
	designation string
	team        string
	managerID   valueobjects.EmployeeID
	createdAt   time.Time
	updatedAt   time.Time
	version     int
}

// NewEmployee creates a new employee with business rule validation
func NewEmployee(id valueobjects.EmployeeID, name, designation, team string, managerID valueobjects.EmployeeID) (*Employee, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("employee ID cannot be empty")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("employee name cannot be empty")
	}
	if id.Equals(managerID) {
		return nil, pkgerrors.NewValidationError("employee cannot be their own manager")
	}

	now := time.Now()
	return &Employee{
		id:          id,
		name:        name,
		designation: designation,
		team:        team,
		managerID:   managerID,
		createdAt:   now,
		updatedAt:   now,
		version:     1,
	}, nil
}

// ReconstructEmployee rebuilds an employee from repository data with
// preserved timestamps and version
func ReconstructEmployee(
	id valueobjects.EmployeeID,
	name, designation, team string,
	managerID valueobjects.EmployeeID,
	createdAt, updatedAt time.Time,
	version int,
) (*Employee, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("employee ID cannot be empty")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("employee name cannot be empty")
	}
	if version < 1 {
		version = 1
	}

	return &Employee{
		id:          id,
		name:        name,
		designation: designation,
		team:        team,
		managerID:   managerID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		version:     version,
	}, nil
}

// ID returns the employee's unique identifier
func (e *Employee) ID() valueobjects.EmployeeID {
	return e.id
}

// Name returns the employee's display name
func (e *Employee) Name() string {
	return e.name
}

// Designation returns the employee's job title
func (e *Employee) Designation() string {
	return e.designation
}

// Team returns the employee's team, which may be empty
func (e *Employee) Team() string {
	return e.team
}

// ManagerID returns the manager reference; zero means root
func (e *Employee) ManagerID() valueobjects.EmployeeID {
	return e.managerID
}

// IsRoot reports whether the employee has no manager
func (e *Employee) IsRoot() bool {
	return e.managerID.IsZero()
}

// Version returns the employee's version for optimistic locking
func (e *Employee) Version() int {
	return e.version
}

// CreatedAt returns when the employee record was created
func (e *Employee) CreatedAt() time.Time {
	return e.createdAt
}

// UpdatedAt returns when the employee record was last updated
func (e *Employee) UpdatedAt() time.Time {
	return e.updatedAt
}

// AssignManager changes the manager reference. Only the Hierarchy aggregate
// calls this; it is the aggregate's job to validate the move against the
// rest of the forest.
func (e *Employee) AssignManager(managerID valueobjects.EmployeeID) error {
	if e.id.Equals(managerID) {
		return pkgerrors.NewValidationError("employee cannot be their own manager")
	}
	if e.managerID.Equals(managerID) {
		return nil // No change needed
	}

	e.managerID = managerID
	e.updatedAt = time.Now()
	e.version++

	return nil
}
