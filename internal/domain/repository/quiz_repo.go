package repository

import (
	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	// CreateWithQuestions сохраняет викторину вместе с вопросами и вариантами
	// ответов одной транзакцией.
	CreateWithQuestions(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	GetWithQuestions(id uint) (*entity.Quiz, error)
	Update(quiz *entity.Quiz) error
	Deactivate(quizID uint) error
	ListActiveByCompany(companyID uint) ([]entity.Quiz, error)
	List(limit, offset int) ([]entity.Quiz, error)
}

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	GetByID(id uint) (*entity.Question, error)
	// GetActiveByQuizID возвращает активные вопросы викторины.
	// Завершенность попытки определяется относительно этого набора.
	GetActiveByQuizID(quizID uint) ([]entity.Question, error)
	Update(question *entity.Question) error
}

// AnswerRepository определяет методы для работы с вариантами ответов
type AnswerRepository interface {
	GetByID(id uint) (*entity.Answer, error)
	GetByQuestionID(questionID uint) ([]entity.Answer, error)
	Update(answer *entity.Answer) error
}
