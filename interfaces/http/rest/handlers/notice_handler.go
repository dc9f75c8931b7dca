package handlers

import (
	"net/http"

	"orgchart-backend/application/ports"
	"orgchart-backend/pkg/common"

	"go.uber.org/zap"
)

// NoticeHandler exposes the user-facing notice feed. Clients poll it to
// show toasts for background events such as a reverted reassignment.
type NoticeHandler struct {
	notifier ports.Notifier
	logger   *zap.Logger
}

// NewNoticeHandler creates a new notice handler
func NewNoticeHandler(notifier ports.Notifier, logger *zap.Logger) *NoticeHandler {
	return &NoticeHandler{
		notifier: notifier,
		logger:   logger,
	}
}

// ListNotices handles GET /notices
func (h *NoticeHandler) ListNotices(w http.ResponseWriter, r *http.Request) {
	notices := h.notifier.Notices()
	if notices == nil {
		notices = []ports.Notice{}
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"notices": notices,
		"total":   len(notices),
	})
}
