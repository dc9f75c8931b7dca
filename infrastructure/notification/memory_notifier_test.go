package notification

import (
	"fmt"
	"testing"

	"orgchart-backend/application/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryNotifier_KeepsInsertionOrder(t *testing.T) {
	n := NewMemoryNotifier(10, zap.NewNop())

	n.Info("first")
	n.Error("second")
	n.Info("third")

	notices := n.Notices()
	require.Len(t, notices, 3)
	assert.Equal(t, "first", notices[0].Message)
	assert.Equal(t, ports.NoticeLevelInfo, notices[0].Level)
	assert.Equal(t, "second", notices[1].Message)
	assert.Equal(t, ports.NoticeLevelError, notices[1].Level)
	assert.Equal(t, "third", notices[2].Message)
}

func TestMemoryNotifier_RingBufferEvictsOldest(t *testing.T) {
	n := NewMemoryNotifier(3, zap.NewNop())

	for i := 1; i <= 5; i++ {
		n.Info(fmt.Sprintf("notice %d", i))
	}

	notices := n.Notices()
	require.Len(t, notices, 3)
	assert.Equal(t, "notice 3", notices[0].Message)
	assert.Equal(t, "notice 4", notices[1].Message)
	assert.Equal(t, "notice 5", notices[2].Message)
}

func TestMemoryNotifier_MinimumCapacity(t *testing.T) {
	n := NewMemoryNotifier(0, zap.NewNop())

	n.Info("only")
	notices := n.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, "only", notices[0].Message)
}

func TestMemoryNotifier_Timestamps(t *testing.T) {
	n := NewMemoryNotifier(2, zap.NewNop())
	n.Error("boom")

	notices := n.Notices()
	require.Len(t, notices, 1)
	assert.False(t, notices[0].Timestamp.IsZero())
}
