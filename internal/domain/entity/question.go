package entity

import (
	"time"
)

// Question представляет вопрос викторины
type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	QuizID    uint      `gorm:"not null;index" json:"quiz_id"`
	Text      string    `gorm:"size:500;not null" json:"text"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	Answers   []Answer  `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}
