package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"orgchart-backend/application/commands"
	"orgchart-backend/application/ports"
	"orgchart-backend/domain/core/aggregates"
	"orgchart-backend/domain/core/valueobjects"
	"orgchart-backend/domain/events"
	"orgchart-backend/domain/services"
	"orgchart-backend/pkg/concurrency"
	pkgerrors "orgchart-backend/pkg/errors"
	"orgchart-backend/pkg/observability"

	"go.uber.org/zap"
)

// persistTimeout bounds the remote write of one reassignment
const persistTimeout = 10 * time.Second

// ReparentHandler validates, applies, and persists manager reassignments.
//
// The operation has two explicit phases: apply (synchronous, local,
// reversible - the optimistic step the user sees immediately) and commit
// (asynchronous, remote). The pre-apply manager reference is retained so a
// failed commit triggers an exact revert, keeping displayed and persisted
// state consistent.
type ReparentHandler struct {
	hierarchy *aggregates.Hierarchy
	guard     *services.CycleGuard
	repo      ports.EmployeeRepository
	publisher ports.EventPublisher
	notifier  ports.Notifier
	metrics   *observability.Metrics
	logger    *zap.Logger

	// locks serializes apply+commit per employee; proposals for distinct
	// employees touch disjoint records and run concurrently.
	locks *concurrency.KeyedMutex

	inflight sync.WaitGroup
}

// NewReparentHandler creates a reparent handler
func NewReparentHandler(
	hierarchy *aggregates.Hierarchy,
	guard *services.CycleGuard,
	repo ports.EmployeeRepository,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *ReparentHandler {
	return &ReparentHandler{
		hierarchy: hierarchy,
		guard:     guard,
		repo:      repo,
		publisher: publisher,
		notifier:  notifier,
		metrics:   metrics,
		logger:    logger,
		locks:     concurrency.NewKeyedMutex(),
	}
}

// Handle processes a reparent proposal. A nil return means the proposal
// was accepted and applied locally; persistence continues in the
// background. A rejected proposal returns an AppError carrying the reject
// code and has no side effects at all.
func (h *ReparentHandler) Handle(ctx context.Context, cmd commands.ReparentEmployeeCommand) error {
	draggedID, err := valueobjects.NewEmployeeID(cmd.DraggedID)
	if err != nil {
		return pkgerrors.NewValidationError("invalid dragged employee ID")
	}

	// Waiting here serializes proposals for the same employee with any
	// in-flight persistence of a previous proposal.
	h.locks.Lock(draggedID.String())
	unlockNow := true
	defer func() {
		if unlockNow {
			h.locks.Unlock(draggedID.String())
		}
	}()

	if _, err := h.hierarchy.Employee(draggedID); err != nil {
		return pkgerrors.NewNotFoundError("employee")
	}

	// Validation order is short-circuit: the first failing check decides
	// the reject reason and nothing past it runs.
	if cmd.TargetID == "" {
		h.reject(ctx, commands.RejectCodeNoTarget)
		return pkgerrors.NewValidationError("drop target is missing").
			WithCode(commands.RejectCodeNoTarget)
	}

	targetID, err := valueobjects.NewEmployeeID(cmd.TargetID)
	if err != nil || !h.hierarchy.Contains(targetID) {
		h.reject(ctx, commands.RejectCodeNoTarget)
		return pkgerrors.NewValidationError("drop target is not a known employee").
			WithCode(commands.RejectCodeNoTarget)
	}

	if draggedID.Equals(targetID) {
		h.reject(ctx, commands.RejectCodeSelfAssignment)
		return pkgerrors.NewValidationError("an employee cannot report to themselves").
			WithCode(commands.RejectCodeSelfAssignment)
	}

	if h.guard.IsAncestor(draggedID, targetID) {
		// Informational, not an error: the user dropped a manager onto
		// one of their own reports.
		h.notifier.Info(fmt.Sprintf(
			"Cannot move %s under %s: the target is part of the dragged employee's own team",
			draggedID.String(), targetID.String(),
		))
		h.reject(ctx, commands.RejectCodeWouldCreateCycle)
		return pkgerrors.NewConflictError("move would create a reporting cycle").
			WithCode(commands.RejectCodeWouldCreateCycle)
	}

	// Apply phase: local, synchronous, reversible.
	prevManagerID, err := h.hierarchy.SetManager(draggedID, targetID)
	if err != nil {
		return err
	}

	h.logger.Info("Reassignment applied locally",
		zap.String("employeeID", draggedID.String()),
		zap.String("newManagerID", targetID.String()),
		zap.String("previousManagerID", prevManagerID.String()),
	)
	h.metrics.Increment(ctx, "ReparentAccepted", nil)

	// Commit phase: remote, asynchronous. The per-employee lock is held
	// until it resolves.
	unlockNow = false
	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		defer h.locks.Unlock(draggedID.String())
		h.commit(draggedID, targetID, prevManagerID)
	}()

	return nil
}

// commit writes the applied reassignment to the remote store, reverting
// the local mutation if the write fails
func (h *ReparentHandler) commit(draggedID, targetID, prevManagerID valueobjects.EmployeeID) {
	// The request context died with the HTTP response; the commit owns
	// its own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	employee, err := h.hierarchy.Employee(draggedID)
	if err == nil {
		_, err = h.repo.UpdateManager(ctx, h.hierarchy.OrganizationID(), employee)
	}

	if err == nil {
		h.logger.Info("Reassignment persisted",
			zap.String("employeeID", draggedID.String()),
			zap.String("managerID", targetID.String()),
		)
		if pubErr := h.publisher.Publish(ctx, events.NewEmployeeReassigned(
			draggedID, prevManagerID, targetID, time.Now(),
		)); pubErr != nil {
			h.logger.Warn("Failed to publish reassignment event", zap.Error(pubErr))
		}
		return
	}

	// Compensate: exact revert to the pre-proposal manager.
	h.logger.Error("Reassignment persistence failed, reverting",
		zap.String("employeeID", draggedID.String()),
		zap.String("failedManagerID", targetID.String()),
		zap.String("restoredManagerID", prevManagerID.String()),
		zap.Error(err),
	)
	h.metrics.Increment(ctx, "ReparentReverted", nil)

	if _, revertErr := h.hierarchy.SetManager(draggedID, prevManagerID); revertErr != nil {
		// The forest changed underneath us in a way that makes the revert
		// itself invalid; surface both failures.
		h.logger.Error("Revert of failed reassignment did not apply",
			zap.String("employeeID", draggedID.String()),
			zap.Error(revertErr),
		)
	}

	h.notifier.Error(fmt.Sprintf(
		"Saving the new manager for %s failed; the change was undone", draggedID.String(),
	))

	if pubErr := h.publisher.Publish(ctx, events.NewReassignmentReverted(
		draggedID, prevManagerID, targetID, err.Error(), time.Now(),
	)); pubErr != nil {
		h.logger.Warn("Failed to publish revert event", zap.Error(pubErr))
	}
}

func (h *ReparentHandler) reject(ctx context.Context, code string) {
	h.metrics.Increment(ctx, "ReparentRejected", map[string]string{"Reason": code})
}

// Wait blocks until all in-flight persistence requests have resolved.
// Used by graceful shutdown and tests.
func (h *ReparentHandler) Wait() {
	h.inflight.Wait()
}
