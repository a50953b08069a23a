package entity

import (
	"time"
)

// Константы статусов заявки на вступление в компанию
const (
	RequestStatusPending     = "pending"
	RequestStatusAccepted    = "accepted"
	RequestStatusDeclined    = "declined"
	RequestStatusDeactivated = "deactivated"
)

// Константы инициатора заявки
const (
	RequestCreatedByUser    = "user"
	RequestCreatedByCompany = "company"
)

// CompanyRequest представляет заявку пользователя на вступление в компанию
// либо приглашение от компании (различаются полем CreatedBy)
type CompanyRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CompanyID uint      `gorm:"not null;index" json:"company_id"`
	Status    string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedBy string    `gorm:"size:20;not null;default:'user'" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (CompanyRequest) TableName() string {
	return "company_requests"
}

// IsPending проверяет, ожидает ли заявка решения
func (r *CompanyRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// IsInvite проверяет, создана ли заявка компанией (приглашение)
func (r *CompanyRequest) IsInvite() bool {
	return r.CreatedBy == RequestCreatedByCompany
}
