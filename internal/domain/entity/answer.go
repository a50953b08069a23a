package entity

import (
	"time"
)

// Answer представляет вариант ответа на вопрос.
// Флаг IsCorrect скрыт от клиента и читается движком подсчета в момент вызова:
// более поздняя правка корректности ответа применяется к результатам ретроактивно.
type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuizID     uint      `gorm:"not null;index" json:"quiz_id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Text       string    `gorm:"size:500;not null" json:"text"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Answer) TableName() string {
	return "answers"
}
