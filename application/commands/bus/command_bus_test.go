package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testCommand struct {
	Fail bool
}

func (c testCommand) Validate() error {
	if c.Fail {
		return errors.New("invalid")
	}
	return nil
}

type otherCommand struct{}

func (c otherCommand) Validate() error { return nil }

func TestCommandBus_Send(t *testing.T) {
	b := NewCommandBus()

	var handled []Command
	require.NoError(t, b.Register(testCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		handled = append(handled, cmd)
		return nil
	})))

	t.Run("dispatches by command type", func(t *testing.T) {
		require.NoError(t, b.Send(context.Background(), testCommand{}))
		assert.Len(t, handled, 1)
	})

	t.Run("validates before dispatch", func(t *testing.T) {
		err := b.Send(context.Background(), testCommand{Fail: true})
		assert.Error(t, err)
		assert.Len(t, handled, 1, "handler must not run for invalid commands")
	})

	t.Run("unregistered command type errors", func(t *testing.T) {
		assert.Error(t, b.Send(context.Background(), otherCommand{}))
	})

	t.Run("duplicate registration errors", func(t *testing.T) {
		err := b.Register(testCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
			return nil
		}))
		assert.Error(t, err)
	})
}

func TestWrap_AppliesMiddlewareOutermostFirst(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
				order = append(order, name)
				return next.Handle(ctx, cmd)
			})
		}
	}

	handler := Wrap(CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		order = append(order, "handler")
		return nil
	}), mw("outer"), mw("inner"))

	require.NoError(t, handler.Handle(context.Background(), testCommand{}))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestLoggingMiddleware_PassesErrorsThrough(t *testing.T) {
	want := errors.New("downstream failed")
	handler := Wrap(CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		return want
	}), LoggingMiddleware(zap.NewNop()))

	err := handler.Handle(context.Background(), testCommand{})
	assert.Equal(t, want, err)
}
