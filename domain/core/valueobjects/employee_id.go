package valueobjects

import (
	"errors"
	"strings"
)

// EmployeeID is a value object representing a unique employee identifier.
// IDs originate in the upstream HR system, so any non-blank string is
// accepted; no UUID shape is assumed.
type EmployeeID struct {
	value string
}

// NewEmployeeID creates an EmployeeID from an existing string
func NewEmployeeID(id string) (EmployeeID, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return EmployeeID{}, errors.New("employee ID cannot be empty")
	}
	return EmployeeID{value: trimmed}, nil
}

// String returns the string representation of the EmployeeID
func (id EmployeeID) String() string {
	return id.value
}

// Equals checks if two EmployeeIDs are equal
func (id EmployeeID) Equals(other EmployeeID) bool {
	return id.value == other.value
}

// IsZero checks if the EmployeeID is the zero value.
// The zero value denotes "no manager" when used as a manager reference.
func (id EmployeeID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id EmployeeID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *EmployeeID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	id.value = strings.TrimSpace(s)
	return nil
}
