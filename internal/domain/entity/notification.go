package entity

import (
	"time"
)

// Notification представляет уведомление пользователя.
// Текст пишется один раз; единственная мутация — перевод Unread в false.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Text      string    `gorm:"size:500;not null" json:"text"`
	Unread    bool      `gorm:"not null;default:true;index" json:"unread"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Notification) TableName() string {
	return "notifications"
}
