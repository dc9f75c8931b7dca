package handlers

import (
	"encoding/json"
	"net/http"

	"orgchart-backend/application/commands"
	"orgchart-backend/application/commands/bus"
	"orgchart-backend/application/queries"
	querybus "orgchart-backend/application/queries/bus"
	"orgchart-backend/pkg/common"
	pkgerrors "orgchart-backend/pkg/errors"
	"orgchart-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EmployeeHandler handles employee-related HTTP requests
type EmployeeHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *EmployeeHandler {
	return &EmployeeHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// ReparentRequest is the request body for reassigning an employee's manager.
// An empty manager_id is a legal request; it is rejected with NO_TARGET so
// the client can distinguish "dropped nowhere" from a malformed call.
type ReparentRequest struct {
	ManagerID string `json:"manager_id" validate:"omitempty,max=128"`
}

// ReparentResponse acknowledges an accepted reassignment. Persistence
// continues in the background after this response is sent.
type ReparentResponse struct {
	EmployeeID string `json:"employee_id"`
	ManagerID  string `json:"manager_id"`
	Status     string `json:"status"`
}

// ListEmployees handles GET /employees
func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	query := queries.ListEmployeesQuery{
		Query: r.URL.Query().Get("q"),
		Team:  r.URL.Query().Get("team"),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to list employees", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list employees")
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// GetEmployee handles GET /employees/{employeeID}
func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Employee ID is required")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetEmployeeQuery{EmployeeID: employeeID})
	if err != nil {
		h.respondAppError(w, err, "Failed to get employee")
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// ListTeams handles GET /teams
func (h *EmployeeHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListTeamsQuery{})
	if err != nil {
		h.logger.Error("Failed to list teams", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list teams")
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// ReparentEmployee handles PATCH /employees/{employeeID}/manager
func (h *EmployeeHandler) ReparentEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Employee ID is required")
		return
	}

	var req ReparentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondErrorWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reassignment request",
			map[string]interface{}{"reason": err.Error()})
		return
	}

	cmd := commands.ReparentEmployeeCommand{
		DraggedID: employeeID,
		TargetID:  req.ManagerID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.respondAppError(w, err, "Failed to reassign employee")
		return
	}

	common.RespondJSON(w, http.StatusAccepted, ReparentResponse{
		EmployeeID: employeeID,
		ManagerID:  req.ManagerID,
		Status:     "accepted",
	})
}

// respondAppError maps an application error onto an HTTP response. Reject
// codes from the reparent flow keep their code in the body so clients can
// react to each rejection reason.
func (h *EmployeeHandler) respondAppError(w http.ResponseWriter, err error, fallback string) {
	appErr := pkgerrors.GetAppError(err)
	if appErr == nil {
		h.logger.Error(fallback, zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case pkgerrors.IsValidation(appErr):
		status = http.StatusBadRequest
	case pkgerrors.IsNotFound(appErr):
		status = http.StatusNotFound
	case pkgerrors.IsConflict(appErr):
		status = http.StatusConflict
	default:
		h.logger.Error(fallback, zap.Error(err))
	}

	code := appErr.Code
	if code == "" {
		code = string(appErr.Type)
	}
	common.RespondError(w, status, code, appErr.Message)
}
