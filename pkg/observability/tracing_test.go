package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilTracerIsNoOp(t *testing.T) {
	var tracer *Tracer
	ctx := context.Background()

	t.Run("Trace runs the function directly", func(t *testing.T) {
		called := false
		err := tracer.Trace(ctx, "op", func(context.Context) error {
			called = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, called)

		want := errors.New("boom")
		assert.Equal(t, want, tracer.Trace(ctx, "op", func(context.Context) error { return want }))
	})

	t.Run("StartSegment returns the context unchanged", func(t *testing.T) {
		segCtx, closeSegment := tracer.StartSegment(ctx, "op")
		assert.Equal(t, ctx, segCtx)
		require.NotNil(t, closeSegment)
		closeSegment(nil)
		closeSegment(errors.New("boom"))
	})
}
