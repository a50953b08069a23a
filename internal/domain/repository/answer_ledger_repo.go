package repository

import (
	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// AnswerLedgerRepository определяет методы для работы с журналом ответов.
// Журнал append-only: записи создаются и читаются, но не изменяются.
type AnswerLedgerRepository interface {
	// Append сохраняет событие ответа. Нарушение уникального индекса
	// (user_id, question_id, attempt_cycle) транслируется в apperrors.ErrConflict:
	// так проигравший в гонке одновременных отправок получает отказ вместо дубля.
	Append(event *entity.UserAnswer) error
	ListByUser(userID uint) ([]entity.UserAnswer, error)
	ListByUserAndQuiz(userID, quizID uint) ([]entity.UserAnswer, error)
}
