package notification

import (
	"sync"
	"time"

	"orgchart-backend/application/ports"

	"go.uber.org/zap"
)

// MemoryNotifier keeps the most recent user-visible notices in a ring
// buffer for the UI to poll, and mirrors each one to the log.
type MemoryNotifier struct {
	mu      sync.Mutex
	notices []ports.Notice
	next    int
	full    bool
	logger  *zap.Logger
}

// NewMemoryNotifier creates a notifier retaining up to capacity notices
func NewMemoryNotifier(capacity int, logger *zap.Logger) *MemoryNotifier {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoryNotifier{
		notices: make([]ports.Notice, capacity),
		logger:  logger,
	}
}

// Info records an informational notice
func (n *MemoryNotifier) Info(message string) {
	n.logger.Info("User notice", zap.String("message", message))
	n.append(ports.Notice{
		Level:     ports.NoticeLevelInfo,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Error records an error notice
func (n *MemoryNotifier) Error(message string) {
	n.logger.Warn("User error notice", zap.String("message", message))
	n.append(ports.Notice{
		Level:     ports.NoticeLevelError,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Notices returns the retained notices, oldest first
func (n *MemoryNotifier) Notices() []ports.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.full {
		out := make([]ports.Notice, n.next)
		copy(out, n.notices[:n.next])
		return out
	}

	out := make([]ports.Notice, 0, len(n.notices))
	out = append(out, n.notices[n.next:]...)
	out = append(out, n.notices[:n.next]...)
	return out
}

func (n *MemoryNotifier) append(notice ports.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.notices[n.next] = notice
	n.next++
	if n.next == len(n.notices) {
		n.next = 0
		n.full = true
	}
}
