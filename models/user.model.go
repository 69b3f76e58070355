package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of user roles. Every capability check goes
// through Role methods instead of comparing raw strings in handlers.
type Role string

const (
	RoleEmployee   Role = "EMPLOYEE"
	RoleManager    Role = "MANAGER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role carries admin capability.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// CanAssign reports whether the role may assign trainings to others.
func (r Role) CanAssign() bool {
	return r == RoleManager || r.IsAdmin()
}

type User struct {
	gorm.Model
	Name         string `json:"name" gorm:"default:''"`
	Email        string `json:"email" gorm:"unique;not null"`
	Password     string `json:"-" gorm:"not null"`
	Role         Role   `json:"role" gorm:"type:varchar(20);default:'EMPLOYEE'"`
	DepartmentID *uint  `json:"department_id" gorm:"index"`
	ManagerID    *uint  `json:"manager_id" gorm:"index"`
	IsActive     bool   `json:"is_active" gorm:"default:true"`

	LastLogin *time.Time `json:"last_login"`
	IsDeleted bool       `json:"-" gorm:"default:false"`
}
