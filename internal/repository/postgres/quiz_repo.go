package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// CreateWithQuestions сохраняет викторину вместе с вопросами и вариантами ответов.
// GORM создает ассоциации каскадно внутри одной транзакции, поэтому либо
// сохраняется вся викторина целиком, либо ничего.
func (r *QuizRepo) CreateWithQuestions(quiz *entity.Quiz) error {
	return r.db.Create(quiz).Error
}

// GetByID возвращает викторину по ID
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetWithQuestions возвращает викторину вместе с вопросами и вариантами ответов
func (r *QuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Preload("Questions.Answers").First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// Update сохраняет изменения викторины. Правки периодичности применяются
// только проспективно: уже завершенные попытки не пересматриваются.
func (r *QuizRepo) Update(quiz *entity.Quiz) error {
	return r.db.Omit("Questions").Save(quiz).Error
}

// Deactivate помечает викторину неактивной (мягкое удаление)
func (r *QuizRepo) Deactivate(quizID uint) error {
	result := r.db.Model(&entity.Quiz{}).Where("id = ? AND is_active = true", quizID).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListActiveByCompany возвращает активные викторины компании
func (r *QuizRepo) ListActiveByCompany(companyID uint) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Where("company_id = ? AND is_active = true", companyID).
		Order("id").
		Find(&quizzes).Error
	return quizzes, err
}

// List возвращает викторины с пагинацией
func (r *QuizRepo) List(limit, offset int) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Order("id").Limit(limit).Offset(offset).Find(&quizzes).Error
	return quizzes, err
}
