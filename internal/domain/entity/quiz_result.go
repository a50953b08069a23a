package entity

import (
	"time"
)

// QuizResult представляет производный результат по одному событию ответа.
// Строки создаются движком подсчета 1:1 к событиям журнала ответов и никогда
// не обновляются по месту: повторный прогон создает новую партию строк.
type QuizResult struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	QuizID       uint      `gorm:"not null;index" json:"quiz_id"`
	QuestionID   uint      `gorm:"not null" json:"question_id"`
	UserAnswerID uint      `gorm:"not null;index" json:"user_answer_id"`
	IsCorrect    bool      `gorm:"not null;default:false" json:"is_correct"`
	ComputedAt   time.Time `gorm:"not null" json:"computed_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (QuizResult) TableName() string {
	return "quiz_results"
}
