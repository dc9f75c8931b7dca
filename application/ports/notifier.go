package ports

import "time"

// NoticeLevel distinguishes informational notices from errors
type NoticeLevel string

const (
	NoticeLevelInfo  NoticeLevel = "info"
	NoticeLevelError NoticeLevel = "error"
)

// Notice is one user-visible message: a rejected move explanation, a fetch
// failure, a reverted reassignment.
type Notice struct {
	Level     NoticeLevel `json:"level"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
}

// Notifier surfaces user-visible notices. All core failure paths are
// non-fatal; this is how they reach the user.
type Notifier interface {
	Info(message string)
	Error(message string)
	Notices() []Notice
}
