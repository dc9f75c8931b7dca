package queries

import "errors"

// ListEmployeesQuery lists employees, optionally filtered the same way the
// chart is
type ListEmployeesQuery struct {
	Query string `json:"query,omitempty"`
	Team  string `json:"team,omitempty"`
}

// Validate validates the query
func (q ListEmployeesQuery) Validate() error {
	return nil
}

// EmployeeView is the read model for a single employee
type EmployeeView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Team        string `json:"team,omitempty"`
	ManagerID   string `json:"manager_id,omitempty"`
}

// ListEmployeesResult is the employee listing
type ListEmployeesResult struct {
	Employees []EmployeeView `json:"employees"`
	Total     int            `json:"total"`
}

// GetEmployeeQuery retrieves a single employee by ID
type GetEmployeeQuery struct {
	EmployeeID string `json:"employee_id"`
}

// Validate validates the query
func (q GetEmployeeQuery) Validate() error {
	if q.EmployeeID == "" {
		return errors.New("employeeID is required")
	}
	return nil
}

// ListTeamsQuery lists the distinct team names for the team filter
// dropdown
type ListTeamsQuery struct{}

// Validate validates the query
func (q ListTeamsQuery) Validate() error {
	return nil
}

// ListTeamsResult is the team listing
type ListTeamsResult struct {
	Teams []string `json:"teams"`
}
