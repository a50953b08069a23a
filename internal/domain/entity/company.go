package entity

import (
	"time"
)

// Константы видимости компании
const (
	CompanyVisibilityHidden       = "hidden"
	CompanyVisibilityVisibleToAll = "visible_to_all"
)

// Company представляет компанию, которой принадлежат викторины и участники
type Company struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:500;not null;default:''" json:"description"`
	Visibility  string    `gorm:"size:20;not null;default:'visible_to_all'" json:"visibility"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Company) TableName() string {
	return "companies"
}

// IsHidden проверяет, скрыта ли компания из публичных списков
func (c *Company) IsHidden() bool {
	return c.Visibility == CompanyVisibilityHidden
}
