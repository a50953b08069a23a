package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// SaveBatch сохраняет пачку результатов одним INSERT.
// Пустая пачка не обращается к базе.
func (r *ResultRepo) SaveBatch(results []entity.QuizResult) error {
	if len(results) == 0 {
		return nil
	}
	return r.db.Create(&results).Error
}

// ListByUser возвращает результаты пользователя
func (r *ResultRepo) ListByUser(userID uint) ([]entity.QuizResult, error) {
	var results []entity.QuizResult
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&results).Error
	return results, err
}

// CountCorrect считает правильные результаты пользователя по всем строкам таблицы
func (r *ResultRepo) CountCorrect(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.QuizResult{}).
		Where("user_id = ? AND is_correct = true", userID).
		Count(&count).Error
	return count, err
}
