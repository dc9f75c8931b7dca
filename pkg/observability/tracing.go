package observability

import (
	"context"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// Tracer wraps X-Ray segment handling so callers only name the operation.
// A nil Tracer is a no-op, matching the Metrics convention.
type Tracer struct {
	serviceName string
}

// NewTracer creates a tracer for a service
func NewTracer(serviceName string) *Tracer {
	return &Tracer{serviceName: serviceName}
}

// Trace runs fn inside a subsegment named after the operation, recording
// any returned error on the segment
func (t *Tracer) Trace(ctx context.Context, operation string, fn func(context.Context) error) error {
	if t == nil {
		return fn(ctx)
	}
	return xray.Capture(ctx, t.serviceName+"."+operation, fn)
}

// StartSegment opens a root segment, used by entrypoints that are not
// already running inside one. The returned close records the outcome.
func (t *Tracer) StartSegment(ctx context.Context, operation string) (context.Context, func(error)) {
	if t == nil {
		return ctx, func(error) {}
	}
	segCtx, seg := xray.BeginSegment(ctx, t.serviceName+"."+operation)
	return segCtx, seg.Close
}
