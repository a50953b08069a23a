package entity

import (
	"time"
)

// Quiz представляет викторину компании с повторяющейся периодичностью прохождения
type Quiz struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CompanyID   uint   `gorm:"not null;index" json:"company_id"`
	AuthorID    uint   `gorm:"not null" json:"author_id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500;not null;default:''" json:"description"`

	// FrequencyInDays — периодичность пересдачи. Новый цикл прохождения разрешен
	// только после того, как с последнего ответа завершенной попытки прошло
	// не меньше этого количества дней. Правки применяются только проспективно.
	FrequencyInDays int `gorm:"not null" json:"frequency_in_days"`

	IsActive  bool       `gorm:"not null;default:true;index" json:"is_active"`
	Questions []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// Frequency возвращает периодичность пересдачи как Duration
func (q *Quiz) Frequency() time.Duration {
	return time.Duration(q.FrequencyInDays) * 24 * time.Hour
}

// RetakeDue проверяет, прошла ли периодичность с момента последнего ответа
func (q *Quiz) RetakeDue(lastAnswerAt, now time.Time) bool {
	return now.Sub(lastAnswerAt) >= q.Frequency()
}
