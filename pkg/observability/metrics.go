package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics publishes operational counters to CloudWatch. A nil receiver or
// nil client turns every call into a no-op, so tests and local development
// need no stub.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
}

// NewMetrics creates a metrics publisher for a namespace
func NewMetrics(namespace string, client *cloudwatch.Client) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
	}
}

// Count publishes a counter increment with optional dimensions
func (m *Metrics) Count(ctx context.Context, name string, value float64, dimensions map[string]string) {
	if m == nil || m.client == nil {
		return
	}

	dims := make([]types.Dimension, 0, len(dimensions))
	for k, v := range dimensions {
		dims = append(dims, types.Dimension{
			Name:  aws.String(k),
			Value: aws.String(v),
		})
	}

	// Metric delivery is best effort; a failed put never affects the
	// operation being measured.
	putCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	_, _ = m.client.PutMetricData(putCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(name),
				Value:      aws.Float64(value),
				Unit:       types.StandardUnitCount,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dims,
			},
		},
	})
}

// Increment publishes a counter increment of one
func (m *Metrics) Increment(ctx context.Context, name string, dimensions map[string]string) {
	m.Count(ctx, name, 1, dimensions)
}
