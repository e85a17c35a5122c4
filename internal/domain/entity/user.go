package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"   // administrador de la plataforma
	RoleManager  = "manager" // gestor dentro de una empresa
	RoleEmployee = "employee"
)

var Roles = []string{RoleAdmin, RoleManager, RoleEmployee}

// Estados de User.
const (
	UserActive    = "active"
	UserInactive  = "inactive"
	UserSuspended = "suspended"
)

// User representa un usuario del sistema. EnterpriseID vacío = usuario de plataforma.
type User struct {
	ID           string
	EnterpriseID string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, manager, employee
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Summary datos del usuario embebibles en otras entidades.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (u *User) Clone() *User {
	c := *u
	return &c
}
