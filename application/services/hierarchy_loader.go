package services

import (
	"context"
	"time"

	"orgchart-backend/application/ports"
	"orgchart-backend/domain/core/aggregates"
	"orgchart-backend/domain/events"
	pkgerrors "orgchart-backend/pkg/errors"
	"orgchart-backend/pkg/observability"

	"go.uber.org/zap"
)

// HierarchyLoader fetches the full employee collection from the remote
// source and swaps it into the hierarchy. A failed fetch is non-fatal: the
// store is left as it was (empty on first load), a transient notice is
// recorded, and no retry is attempted - the user reloads.
type HierarchyLoader struct {
	hierarchy *aggregates.Hierarchy
	repo      ports.EmployeeRepository
	publisher ports.EventPublisher
	notifier  ports.Notifier
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewHierarchyLoader creates a hierarchy loader
func NewHierarchyLoader(
	hierarchy *aggregates.Hierarchy,
	repo ports.EmployeeRepository,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *HierarchyLoader {
	return &HierarchyLoader{
		hierarchy: hierarchy,
		repo:      repo,
		publisher: publisher,
		notifier:  notifier,
		metrics:   metrics,
		logger:    logger,
	}
}

// Load fetches and replaces the employee collection
func (l *HierarchyLoader) Load(ctx context.Context) error {
	organizationID := l.hierarchy.OrganizationID()

	employees, err := l.repo.List(ctx, organizationID)
	if err != nil {
		l.logger.Error("Employee fetch failed",
			zap.String("organizationID", organizationID),
			zap.Error(err),
		)
		l.notifier.Error("Loading the organization chart failed; please reload")
		l.metrics.Increment(ctx, "HierarchyLoadFailed", nil)
		return pkgerrors.NewExternalError("employee source", err)
	}

	if err := l.hierarchy.Replace(employees); err != nil {
		l.notifier.Error("The loaded employee data was inconsistent; please reload")
		return err
	}

	l.logger.Info("Hierarchy loaded",
		zap.String("organizationID", organizationID),
		zap.Int("employees", len(employees)),
	)

	if pubErr := l.publisher.Publish(ctx, events.NewHierarchyLoaded(
		organizationID, len(employees), time.Now(),
	)); pubErr != nil {
		l.logger.Warn("Failed to publish hierarchy loaded event", zap.Error(pubErr))
	}

	return nil
}
