package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"orgchart-backend/application/ports"
	"orgchart-backend/domain/events"

	"github.com/aws/aws-sdk-go-v2/aws"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// eventEnvelope wraps an event payload with a unique ID so consumers can
// deduplicate retried PutEvents deliveries
type eventEnvelope struct {
	EventID string          `json:"event_id"`
	Event   json.RawMessage `json:"event"`
}

const eventSource = "orgchart.hierarchy"

// PutEvents accepts at most ten entries per call
const maxBatchSize = 10

// Publisher sends domain events to an EventBridge bus
type Publisher struct {
	client  *awseventbridge.Client
	busName string
	logger  *zap.Logger
}

// NewPublisher creates an EventBridge publisher
func NewPublisher(client *awseventbridge.Client, busName string, logger *zap.Logger) ports.EventPublisher {
	return &Publisher{
		client:  client,
		busName: busName,
		logger:  logger,
	}
}

// Publish sends a single domain event
func (p *Publisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return p.PublishBatch(ctx, []events.DomainEvent{event})
}

// PublishBatch sends domain events in PutEvents-sized chunks
func (p *Publisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	for start := 0; start < len(batch); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(batch) {
			end = len(batch)
		}

		entries := make([]types.PutEventsRequestEntry, 0, end-start)
		for _, event := range batch[start:end] {
			payload, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("failed to marshal event %s: %w", event.GetEventType(), err)
			}
			detail, err := json.Marshal(eventEnvelope{
				EventID: uuid.New().String(),
				Event:   payload,
			})
			if err != nil {
				return fmt.Errorf("failed to marshal event %s: %w", event.GetEventType(), err)
			}
			entries = append(entries, types.PutEventsRequestEntry{
				EventBusName: aws.String(p.busName),
				Source:       aws.String(eventSource),
				DetailType:   aws.String(event.GetEventType()),
				Detail:       aws.String(string(detail)),
			})
		}

		out, err := p.client.PutEvents(ctx, &awseventbridge.PutEventsInput{
			Entries: entries,
		})
		if err != nil {
			return fmt.Errorf("failed to put events: %w", err)
		}
		if out.FailedEntryCount > 0 {
			for _, entry := range out.Entries {
				if entry.ErrorCode != nil {
					p.logger.Warn("EventBridge entry rejected",
						zap.String("errorCode", aws.ToString(entry.ErrorCode)),
						zap.String("errorMessage", aws.ToString(entry.ErrorMessage)),
					)
				}
			}
			return fmt.Errorf("%d event entries failed", out.FailedEntryCount)
		}
	}

	return nil
}
