package events

import (
	"time"

	"orgchart-backend/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// EmployeeReassigned is raised when an employee's manager changes and the
// change has been confirmed by the remote store
type EmployeeReassigned struct {
	BaseEvent
	EmployeeID   valueobjects.EmployeeID `json:"employee_id"`
	OldManagerID valueobjects.EmployeeID `json:"old_manager_id"`
	NewManagerID valueobjects.EmployeeID `json:"new_manager_id"`
}

// NewEmployeeReassigned creates an EmployeeReassigned event
func NewEmployeeReassigned(employeeID, oldManagerID, newManagerID valueobjects.EmployeeID, timestamp time.Time) EmployeeReassigned {
	return EmployeeReassigned{
		BaseEvent: BaseEvent{
			AggregateID: employeeID.String(),
			EventType:   "employee.reassigned",
			Timestamp:   timestamp,
			Version:     1,
		},
		EmployeeID:   employeeID,
		OldManagerID: oldManagerID,
		NewManagerID: newManagerID,
	}
}

// ReassignmentReverted is raised when a locally applied manager change had
// to be rolled back because the remote write failed
type ReassignmentReverted struct {
	BaseEvent
	EmployeeID        valueobjects.EmployeeID `json:"employee_id"`
	RestoredManagerID valueobjects.EmployeeID `json:"restored_manager_id"`
	FailedManagerID   valueobjects.EmployeeID `json:"failed_manager_id"`
	Reason            string                  `json:"reason"`
}

// NewReassignmentReverted creates a ReassignmentReverted event
func NewReassignmentReverted(employeeID, restoredManagerID, failedManagerID valueobjects.EmployeeID, reason string, timestamp time.Time) ReassignmentReverted {
	return ReassignmentReverted{
		BaseEvent: BaseEvent{
			AggregateID: employeeID.String(),
			EventType:   "employee.reassignment_reverted",
			Timestamp:   timestamp,
			Version:     1,
		},
		EmployeeID:        employeeID,
		RestoredManagerID: restoredManagerID,
		FailedManagerID:   failedManagerID,
		Reason:            reason,
	}
}

// HierarchyLoaded is raised when the employee collection has been (re)loaded
// from the remote source
type HierarchyLoaded struct {
	BaseEvent
	EmployeeCount int `json:"employee_count"`
}

// NewHierarchyLoaded creates a HierarchyLoaded event
func NewHierarchyLoaded(organizationID string, employeeCount int, timestamp time.Time) HierarchyLoaded {
	return HierarchyLoaded{
		BaseEvent: BaseEvent{
			AggregateID: organizationID,
			EventType:   "hierarchy.loaded",
			Timestamp:   timestamp,
			Version:     1,
		},
		EmployeeCount: employeeCount,
	}
}
