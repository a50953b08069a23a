package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// AnswerRepo реализует repository.AnswerRepository
type AnswerRepo struct {
	db *gorm.DB
}

// NewAnswerRepo создает новый репозиторий вариантов ответов
func NewAnswerRepo(db *gorm.DB) *AnswerRepo {
	return &AnswerRepo{db: db}
}

// GetByID возвращает вариант ответа по ID
func (r *AnswerRepo) GetByID(id uint) (*entity.Answer, error) {
	var answer entity.Answer
	err := r.db.First(&answer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &answer, nil
}

// GetByQuestionID возвращает варианты ответов вопроса
func (r *AnswerRepo) GetByQuestionID(questionID uint) ([]entity.Answer, error) {
	var answers []entity.Answer
	err := r.db.Where("question_id = ?", questionID).Order("id").Find(&answers).Error
	return answers, err
}

// Update сохраняет изменения варианта ответа
func (r *AnswerRepo) Update(answer *entity.Answer) error {
	return r.db.Save(answer).Error
}
