package ports

import (
	"context"

	"orgchart-backend/domain/core/entities"
	"orgchart-backend/domain/events"
)

// EmployeeRepository is the port for the remote employee store. It acts as
// both the employee source (List) and the persistence sink for manager
// reassignments (UpdateManager).
// This is a port in hexagonal architecture - the domain doesn't know about
// the implementation.
type EmployeeRepository interface {
	// List retrieves the full employee collection for an organization
	List(ctx context.Context, organizationID string) ([]*entities.Employee, error)

	// Save persists a full employee record (create or update)
	Save(ctx context.Context, organizationID string, employee *entities.Employee) error

	// UpdateManager writes the employee's current manager reference (and
	// current attributes) keyed by employee ID, returning the stored record
	UpdateManager(ctx context.Context, organizationID string, employee *entities.Employee) (*entities.Employee, error)
}

// EventPublisher publishes domain events to the outside world
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
