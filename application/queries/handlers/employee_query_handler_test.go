package handlers

import (
	"context"
	"testing"

	"orgchart-backend/application/queries"
	"orgchart-backend/domain/core/aggregates"
	"orgchart-backend/domain/core/entities"
	"orgchart-backend/domain/services"
	pkgerrors "orgchart-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func querySetup(t *testing.T) *EmployeeQueryHandler {
	t.Helper()
	hierarchy := aggregates.NewHierarchy("org-1")
	require.NoError(t, hierarchy.Replace([]*entities.Employee{
		chartEmployee(t, "ceo", "Exec", ""),
		chartEmployee(t, "vp", "Engineering", "ceo"),
		chartEmployee(t, "dev", "Engineering", "vp"),
	}))
	return NewEmployeeQueryHandler(hierarchy, services.NewVisibilityFilter())
}

func TestEmployeeQueryHandler_ListEmployees(t *testing.T) {
	h := querySetup(t)

	t.Run("lists everyone without criteria", func(t *testing.T) {
		raw, err := h.Handle(context.Background(), queries.ListEmployeesQuery{})
		require.NoError(t, err)

		result := raw.(*queries.ListEmployeesResult)
		assert.Equal(t, 3, result.Total)
		assert.Len(t, result.Employees, 3)
	})

	t.Run("applies the same criteria as the chart", func(t *testing.T) {
		raw, err := h.Handle(context.Background(), queries.ListEmployeesQuery{Team: "Engineering"})
		require.NoError(t, err)

		result := raw.(*queries.ListEmployeesResult)
		assert.Equal(t, 2, result.Total)
	})
}

func TestEmployeeQueryHandler_GetEmployee(t *testing.T) {
	h := querySetup(t)

	t.Run("returns the read model", func(t *testing.T) {
		raw, err := h.Handle(context.Background(), queries.GetEmployeeQuery{EmployeeID: "vp"})
		require.NoError(t, err)

		view := raw.(*queries.EmployeeView)
		assert.Equal(t, "vp", view.ID)
		assert.Equal(t, "ceo", view.ManagerID)
	})

	t.Run("unknown employee is not found", func(t *testing.T) {
		_, err := h.Handle(context.Background(), queries.GetEmployeeQuery{EmployeeID: "ghost"})
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestEmployeeQueryHandler_ListTeams(t *testing.T) {
	h := querySetup(t)

	raw, err := h.Handle(context.Background(), queries.ListTeamsQuery{})
	require.NoError(t, err)

	result := raw.(*queries.ListTeamsResult)
	assert.Equal(t, []string{"Engineering", "Exec"}, result.Teams)
}
