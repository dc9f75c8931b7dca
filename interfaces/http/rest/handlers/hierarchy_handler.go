package handlers

import (
	"net/http"

	"orgchart-backend/application/commands"
	"orgchart-backend/application/commands/bus"
	"orgchart-backend/pkg/common"

	"go.uber.org/zap"
)

// HierarchyHandler handles hierarchy lifecycle requests
type HierarchyHandler struct {
	commandBus *bus.CommandBus
	logger     *zap.Logger
}

// NewHierarchyHandler creates a new hierarchy handler
func NewHierarchyHandler(commandBus *bus.CommandBus, logger *zap.Logger) *HierarchyHandler {
	return &HierarchyHandler{
		commandBus: commandBus,
		logger:     logger,
	}
}

// ReloadHierarchy handles POST /hierarchy/reload. A failed reload leaves
// the currently loaded hierarchy untouched, so the response reports the
// failure without invalidating the client's view.
func (h *HierarchyHandler) ReloadHierarchy(w http.ResponseWriter, r *http.Request) {
	if err := h.commandBus.Send(r.Context(), commands.ReloadHierarchyCommand{}); err != nil {
		h.logger.Error("Hierarchy reload failed", zap.Error(err))
		common.RespondError(w, http.StatusBadGateway, "EXTERNAL_SERVICE_ERROR", "Loading the organization chart failed; please reload")
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "reloaded",
	})
}
