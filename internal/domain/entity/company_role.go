package entity

import (
	"time"
)

// Константы ролей внутри компании
const (
	RoleTypeOwner = "owner"
	RoleTypeAdmin = "admin"
	RoleTypeUser  = "user"
)

// CompanyRole представляет роль пользователя внутри компании
type CompanyRole struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CompanyID uint      `gorm:"not null;index" json:"company_id"`
	RoleType  string    `gorm:"size:20;not null;default:'user'" json:"role_type"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (CompanyRole) TableName() string {
	return "company_roles"
}

// CanManageQuizzes проверяет, может ли роль управлять викторинами компании
func (r *CompanyRole) CanManageQuizzes() bool {
	return r.RoleType == RoleTypeOwner || r.RoleType == RoleTypeAdmin
}
