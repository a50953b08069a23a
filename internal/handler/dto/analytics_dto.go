package dto

import (
	"time"
)

// QuizAverageDTO представляет количество правильных ответов по одной викторине
type QuizAverageDTO struct {
	QuizID       uint `json:"quiz_id"`
	AverageCount int  `json:"average_count"`
}

// QuizCompletionDTO представляет время последнего прохождения викторины
type QuizCompletionDTO struct {
	QuizID             uint      `json:"quiz_id"`
	LastCompletionTime time.Time `json:"last_completion_time"`
}

// MemberAverageDTO представляет счет участника компании за период
type MemberAverageDTO struct {
	UserID       uint `json:"user_id"`
	AverageCount int  `json:"average_count"`
}

// MemberCompletionDTO представляет время последней активности участника компании
type MemberCompletionDTO struct {
	UserID             uint      `json:"user_id"`
	LastCompletionTime time.Time `json:"last_completion_time"`
}
