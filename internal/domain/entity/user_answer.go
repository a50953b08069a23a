package entity

import (
	"time"
)

// UserAnswer представляет событие ответа пользователя на вопрос викторины.
// Журнал ответов append-only: записи никогда не изменяются и не удаляются.
type UserAnswer struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	UserID     uint `gorm:"not null;index;uniqueIndex:idx_user_question_cycle" json:"user_id"`
	QuizID     uint `gorm:"not null;index" json:"quiz_id"`
	QuestionID uint `gorm:"not null;index;uniqueIndex:idx_user_question_cycle" json:"question_id"`
	AnswerID   uint `gorm:"not null" json:"answer_id"`

	// AttemptCycle — номер цикла прохождения (0 для первой попытки).
	// Уникальный индекс (user_id, question_id, attempt_cycle) гарантирует, что из двух
	// одновременных отправок одного ответа проигравшая завершится конфликтом,
	// а не молчаливым дублем.
	AttemptCycle int `gorm:"not null;default:0;uniqueIndex:idx_user_question_cycle" json:"attempt_cycle"`

	SubmittedAt time.Time `gorm:"not null;index" json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (UserAnswer) TableName() string {
	return "user_answers"
}
