package entity

import (
	"time"
)

// CompanyMembership представляет членство пользователя в компании.
// Планировщик уведомлений итерируется по активным членствам как по внешнему циклу.
type CompanyMembership struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	CompanyID uint      `gorm:"primaryKey;autoIncrement:false" json:"company_id"`
	IsOwner   bool      `gorm:"not null;default:false" json:"is_owner"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (CompanyMembership) TableName() string {
	return "company_membership"
}
