package employee

import (
	"time"
)

type Employee struct {
	ID        string
	FullName  string
	Email     string
	Position  string
	Role      Role
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
)

// ParseRole parses the wire representation of a role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleEmployee:
		return RoleEmployee, true
	case RoleManager:
		return RoleManager, true
	case RoleHR:
		return RoleHR, true
	}
	return "", false
}

// CanManageTimekeeping reports whether the role may correct logs, set leave
// markers and export reports.
func (r Role) CanManageTimekeeping() bool {
	return r == RoleManager || r == RoleHR
}
