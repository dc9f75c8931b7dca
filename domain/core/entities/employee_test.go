package entities

import (
	"testing"

	"orgchart-backend/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustID(t *testing.T, s string) valueobjects.EmployeeID {
	t.Helper()
	id, err := valueobjects.NewEmployeeID(s)
	require.NoError(t, err)
	return id
}

func TestNewEmployee(t *testing.T) {
	t.Run("creates a root employee", func(t *testing.T) {
		e, err := NewEmployee(mustID(t, "emp-1"), "Ada", "CTO", "Engineering", valueobjects.EmployeeID{})
		require.NoError(t, err)

		assert.Equal(t, "emp-1", e.ID().String())
		assert.Equal(t, "Ada", e.Name())
		assert.Equal(t, "CTO", e.Designation())
		assert.Equal(t, "Engineering", e.Team())
		assert.True(t, e.IsRoot())
		assert.Equal(t, 1, e.Version())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewEmployee(mustID(t, "emp-1"), "", "CTO", "", valueobjects.EmployeeID{})
		assert.Error(t, err)
	})

	t.Run("rejects self-managed employee", func(t *testing.T) {
		id := mustID(t, "emp-1")
		_, err := NewEmployee(id, "Ada", "CTO", "", id)
		assert.Error(t, err)
	})
}

func TestEmployee_AssignManager(t *testing.T) {
	t.Run("changes the manager reference and bumps version", func(t *testing.T) {
		e, err := NewEmployee(mustID(t, "emp-2"), "Grace", "Engineer", "Engineering", mustID(t, "emp-1"))
		require.NoError(t, err)

		require.NoError(t, e.AssignManager(mustID(t, "emp-3")))

		assert.Equal(t, "emp-3", e.ManagerID().String())
		assert.Equal(t, 2, e.Version())
		assert.False(t, e.IsRoot())
	})

	t.Run("same manager is a no-op", func(t *testing.T) {
		manager := mustID(t, "emp-1")
		e, err := NewEmployee(mustID(t, "emp-2"), "Grace", "Engineer", "", manager)
		require.NoError(t, err)

		require.NoError(t, e.AssignManager(manager))
		assert.Equal(t, 1, e.Version())
	})

	t.Run("rejects self-assignment", func(t *testing.T) {
		e, err := NewEmployee(mustID(t, "emp-2"), "Grace", "Engineer", "", mustID(t, "emp-1"))
		require.NoError(t, err)

		assert.Error(t, e.AssignManager(e.ID()))
		assert.Equal(t, "emp-1", e.ManagerID().String())
	})

	t.Run("zero manager makes the employee a root", func(t *testing.T) {
		e, err := NewEmployee(mustID(t, "emp-2"), "Grace", "Engineer", "", mustID(t, "emp-1"))
		require.NoError(t, err)

		require.NoError(t, e.AssignManager(valueobjects.EmployeeID{}))
		assert.True(t, e.IsRoot())
	})
}
