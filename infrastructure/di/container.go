package di

import (
	"context"

	"orgchart-backend/application/commands/bus"
	commandhandlers "orgchart-backend/application/commands/handlers"
	"orgchart-backend/application/ports"
	querybus "orgchart-backend/application/queries/bus"
	"orgchart-backend/application/services"
	"orgchart-backend/domain/core/aggregates"
	"orgchart-backend/infrastructure/config"
	"orgchart-backend/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	Hierarchy       *aggregates.Hierarchy
	EmployeeRepo    ports.EmployeeRepository
	EventPublisher  ports.EventPublisher
	Notifier        ports.Notifier
	LayoutEngine    ports.LayoutEngine
	HierarchyLoader *services.HierarchyLoader
	ReparentHandler *commandhandlers.ReparentHandler
	CommandBus      *bus.CommandBus
	QueryBus        *querybus.QueryBus
	Metrics         *observability.Metrics
	Tracer          *observability.Tracer
}

// Shutdown flushes background work. It blocks until in-flight persistence
// requests have committed or reverted, then syncs the logger.
func (c *Container) Shutdown(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		c.ReparentHandler.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		c.Logger.Warn("Shutdown deadline reached with persistence still in flight")
	}

	_ = c.Logger.Sync()
}
