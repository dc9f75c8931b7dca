package di

import (
	"context"
	"fmt"

	"orgchart-backend/application/commands"
	"orgchart-backend/application/commands/bus"
	commandhandlers "orgchart-backend/application/commands/handlers"
	"orgchart-backend/application/ports"
	"orgchart-backend/application/queries"
	querybus "orgchart-backend/application/queries/bus"
	queryhandlers "orgchart-backend/application/queries/handlers"
	"orgchart-backend/application/services"
	"orgchart-backend/domain/core/aggregates"
	domainservices "orgchart-backend/domain/services"
	"orgchart-backend/infrastructure/config"
	"orgchart-backend/infrastructure/layout"
	"orgchart-backend/infrastructure/messaging/eventbridge"
	"orgchart-backend/infrastructure/notification"
	"orgchart-backend/infrastructure/persistence/dynamodb"
	"orgchart-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideMetrics creates a metrics instance. A nil Metrics is valid and
// records nothing, so disabled metrics cost no branches at call sites.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	namespace := fmt.Sprintf("OrgChart/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client)
}

// ProvideTracer creates a tracer instance, nil when tracing is disabled
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	if !cfg.EnableTracing {
		return nil
	}
	return observability.NewTracer("orgchart-backend")
}

// ProvideEmployeeRepository creates the DynamoDB-backed employee repository
func ProvideEmployeeRepository(
	client *awsdynamodb.Client,
	cfg *config.Config,
	tracer *observability.Tracer,
	logger *zap.Logger,
) ports.EmployeeRepository {
	return dynamodb.NewEmployeeRepository(client, cfg.DynamoDBTable, tracer, logger)
}

// ProvideEventPublisher creates the EventBridge domain event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideNotifier creates the in-memory notice feed
func ProvideNotifier(cfg *config.Config, logger *zap.Logger) ports.Notifier {
	return notification.NewMemoryNotifier(cfg.NoticeBufferSize, logger)
}

// ProvideHierarchy creates the in-memory hierarchy aggregate
func ProvideHierarchy(cfg *config.Config) *aggregates.Hierarchy {
	return aggregates.NewHierarchy(cfg.OrganizationID)
}

// ProvideCycleGuard creates the ancestor checker over the live hierarchy
func ProvideCycleGuard(hierarchy *aggregates.Hierarchy) *domainservices.CycleGuard {
	return domainservices.NewCycleGuard(hierarchy)
}

// ProvideVisibilityFilter creates the visibility filter
func ProvideVisibilityFilter() *domainservices.VisibilityFilter {
	return domainservices.NewVisibilityFilter()
}

// ProvideSubgraphExtractor creates the subgraph extractor
func ProvideSubgraphExtractor() *domainservices.SubgraphExtractor {
	return domainservices.NewSubgraphExtractor()
}

// ProvideLayoutEngine creates the HTTP layout engine client
func ProvideLayoutEngine(cfg *config.Config, logger *zap.Logger) ports.LayoutEngine {
	return layout.NewElkClient(cfg.LayoutServiceURL, cfg.LayoutTimeout, logger)
}

// ProvideHierarchyLoader creates the hierarchy loader
func ProvideHierarchyLoader(
	hierarchy *aggregates.Hierarchy,
	repo ports.EmployeeRepository,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.HierarchyLoader {
	return services.NewHierarchyLoader(hierarchy, repo, publisher, notifier, metrics, logger)
}

// ProvideReparentHandler creates the reparent command handler
func ProvideReparentHandler(
	hierarchy *aggregates.Hierarchy,
	guard *domainservices.CycleGuard,
	repo ports.EmployeeRepository,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *commandhandlers.ReparentHandler {
	return commandhandlers.NewReparentHandler(hierarchy, guard, repo, publisher, notifier, metrics, logger)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	reparentHandler *commandhandlers.ReparentHandler,
	loader *services.HierarchyLoader,
	logger *zap.Logger,
) *bus.CommandBus {
	commandBus := bus.NewCommandBus()
	logging := bus.LoggingMiddleware(logger)

	commandBus.Register(commands.ReparentEmployeeCommand{}, bus.Wrap(
		bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
			reparentCmd, ok := cmd.(commands.ReparentEmployeeCommand)
			if !ok {
				return fmt.Errorf("invalid command type %T", cmd)
			}
			return reparentHandler.Handle(ctx, reparentCmd)
		}),
		logging,
	))

	commandBus.Register(commands.ReloadHierarchyCommand{}, bus.Wrap(
		bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
			if _, ok := cmd.(commands.ReloadHierarchyCommand); !ok {
				return fmt.Errorf("invalid command type %T", cmd)
			}
			return loader.Load(ctx)
		}),
		logging,
	))

	return commandBus
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	hierarchy *aggregates.Hierarchy,
	filter *domainservices.VisibilityFilter,
	extractor *domainservices.SubgraphExtractor,
	engine ports.LayoutEngine,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	chartHandler := queryhandlers.NewChartDataHandler(hierarchy, filter, extractor, engine, metrics, logger)
	queryBus.Register(queries.GetChartDataQuery{}, chartHandler)

	employeeHandler := queryhandlers.NewEmployeeQueryHandler(hierarchy, filter)
	queryBus.Register(queries.ListEmployeesQuery{}, employeeHandler)
	queryBus.Register(queries.GetEmployeeQuery{}, employeeHandler)
	queryBus.Register(queries.ListTeamsQuery{}, employeeHandler)

	return queryBus
}
