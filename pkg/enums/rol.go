package enums

import "fmt"

// UserRole distinguishes store owners from staff.
type UserRole string

const (
	RoleJefe     UserRole = "jefe"
	RoleEmpleado UserRole = "empleado"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case RoleJefe, RoleEmpleado:
		return true
	}
	return false
}

// ParseUserRole validates and converts a raw role string.
func ParseUserRole(raw string) (UserRole, error) {
	r := UserRole(raw)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid user role %q", raw)
	}
	return r, nil
}
