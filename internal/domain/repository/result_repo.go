package repository

import (
	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// ResultRepository определяет методы для работы с производными результатами
type ResultRepository interface {
	// SaveBatch сохраняет партию результатов одной транзакцией.
	// Частично записанных партий не бывает.
	SaveBatch(results []entity.QuizResult) error
	ListByUser(userID uint) ([]entity.QuizResult, error)
	// CountCorrect возвращает количество правильных результатов по ВСЕМ
	// сохраненным строкам пользователя, не только по последней партии.
	CountCorrect(userID uint) (int64, error)
}
