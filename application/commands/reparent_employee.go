package commands

import (
	"errors"
)

// Reject codes attached to the AppError a rejected proposal produces.
// A rejected proposal never mutates the hierarchy and never issues a
// persistence request.
const (
	RejectCodeNoTarget         = "NO_TARGET"
	RejectCodeSelfAssignment   = "SELF_ASSIGNMENT"
	RejectCodeWouldCreateCycle = "WOULD_CREATE_CYCLE"
)

// ReparentEmployeeCommand proposes moving an employee under a new manager.
// It is created when a drag gesture completes; TargetID may be empty when
// the drop landed outside any valid target.
type ReparentEmployeeCommand struct {
	DraggedID string `json:"dragged_id"`
	TargetID  string `json:"target_id"`
}

// Validate validates the command
func (c ReparentEmployeeCommand) Validate() error {
	if c.DraggedID == "" {
		return errors.New("draggedID is required")
	}
	// An absent TargetID is a legal proposal; the coordinator rejects it
	// with NO_TARGET rather than erroring here.
	return nil
}
