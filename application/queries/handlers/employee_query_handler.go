package handlers

import (
	"context"
	"fmt"

	"orgchart-backend/application/queries"
	querybus "orgchart-backend/application/queries/bus"
	"orgchart-backend/domain/core/aggregates"
	"orgchart-backend/domain/core/entities"
	"orgchart-backend/domain/core/valueobjects"
	"orgchart-backend/domain/services"
)

// EmployeeQueryHandler serves the employee read models: listings, single
// lookups, and the team dropdown. All reads are pure derivations over the
// hierarchy.
type EmployeeQueryHandler struct {
	hierarchy *aggregates.Hierarchy
	filter    *services.VisibilityFilter
}

// NewEmployeeQueryHandler creates an employee query handler
func NewEmployeeQueryHandler(hierarchy *aggregates.Hierarchy, filter *services.VisibilityFilter) *EmployeeQueryHandler {
	return &EmployeeQueryHandler{
		hierarchy: hierarchy,
		filter:    filter,
	}
}

// Handle implements querybus.QueryHandler
func (h *EmployeeQueryHandler) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	switch q := query.(type) {
	case queries.ListEmployeesQuery:
		return h.listEmployees(q), nil
	case queries.GetEmployeeQuery:
		return h.getEmployee(q)
	case queries.ListTeamsQuery:
		return &queries.ListTeamsResult{Teams: h.hierarchy.Teams()}, nil
	default:
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
}

func (h *EmployeeQueryHandler) listEmployees(q queries.ListEmployeesQuery) *queries.ListEmployeesResult {
	visible := h.filter.Visible(h.hierarchy.Employees(), services.VisibilityCriteria{
		Query: q.Query,
		Team:  q.Team,
	})

	result := &queries.ListEmployeesResult{
		Employees: make([]queries.EmployeeView, 0, len(visible)),
		Total:     len(visible),
	}
	for _, e := range visible {
		result.Employees = append(result.Employees, toEmployeeView(e))
	}
	return result
}

func (h *EmployeeQueryHandler) getEmployee(q queries.GetEmployeeQuery) (*queries.EmployeeView, error) {
	id, err := valueobjects.NewEmployeeID(q.EmployeeID)
	if err != nil {
		return nil, err
	}
	e, err := h.hierarchy.Employee(id)
	if err != nil {
		return nil, err
	}
	view := toEmployeeView(e)
	return &view, nil
}

func toEmployeeView(e *entities.Employee) queries.EmployeeView {
	return queries.EmployeeView{
		ID:          e.ID().String(),
		Name:        e.Name(),
		Designation: e.Designation(),
		Team:        e.Team(),
		ManagerID:   e.ManagerID().String(),
	}
}
