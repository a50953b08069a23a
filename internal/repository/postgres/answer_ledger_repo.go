package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// AnswerLedgerRepo реализует repository.AnswerLedgerRepository
type AnswerLedgerRepo struct {
	db *gorm.DB
}

// NewAnswerLedgerRepo создает новый репозиторий журнала ответов
func NewAnswerLedgerRepo(db *gorm.DB) *AnswerLedgerRepo {
	return &AnswerLedgerRepo{db: db}
}

// Append добавляет запись в журнал ответов. Уникальный индекс по
// (user_id, question_id, attempt_cycle) гарантирует, что из двух
// конкурентных записей одного цикла успеет только одна; проигравший
// получает apperrors.ErrConflict.
func (r *AnswerLedgerRepo) Append(answer *entity.UserAnswer) error {
	err := r.db.Create(answer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}

// ListByUser возвращает все записи журнала пользователя
func (r *AnswerLedgerRepo) ListByUser(userID uint) ([]entity.UserAnswer, error) {
	var answers []entity.UserAnswer
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&answers).Error
	return answers, err
}

// ListByUserAndQuiz возвращает записи журнала пользователя по конкретной викторине
func (r *AnswerLedgerRepo) ListByUserAndQuiz(userID, quizID uint) ([]entity.UserAnswer, error) {
	var answers []entity.UserAnswer
	err := r.db.Where("user_id = ? AND quiz_id = ?", userID, quizID).Order("id").Find(&answers).Error
	return answers, err
}
