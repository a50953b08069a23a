package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// GateDecision — типизированный исход проверки допуска к ответу.
// Отказ — ожидаемая ветка бизнес-логики, а не исключительная ситуация.
type GateDecision struct {
	Allowed bool
	Reason  string

	// AttemptCycle — номер цикла прохождения, с которым должно быть записано
	// событие ответа при разрешенной отправке.
	AttemptCycle int
}

// AnswerService предоставляет методы приема ответов: проверку допуска
// и запись события в журнал ответов
type AnswerService struct {
	quizRepo       repository.QuizRepository
	questionRepo   repository.QuestionRepository
	answerRepo     repository.AnswerRepository
	ledgerRepo     repository.AnswerLedgerRepository
	membershipRepo repository.MembershipRepository
}

// NewAnswerService создает новый сервис приема ответов
func NewAnswerService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	ledgerRepo repository.AnswerLedgerRepository,
	membershipRepo repository.MembershipRepository,
) *AnswerService {
	return &AnswerService{
		quizRepo:       quizRepo,
		questionRepo:   questionRepo,
		answerRepo:     answerRepo,
		ledgerRepo:     ledgerRepo,
		membershipRepo: membershipRepo,
	}
}

// resolveGate — чистое решение допуска по уже загруженным данным.
//
// Правила:
//  1. Вопрос, на который пользователь еще не отвечал, доступен всегда:
//     периодичность ограничивает повторное прохождение, а не первую попытку.
//  2. Отвеченный вопрос при незавершенной попытке (отвечены не все активные
//     вопросы викторины) закрыт — попытку надо завершить, отвечая на
//     оставшиеся вопросы, а не переигрывая уже отвеченные.
//  3. Отвеченный вопрос при завершенной попытке открывается только после того,
//     как с последнего ответа по викторине прошла периодичность пересдачи.
func resolveGate(quiz *entity.Quiz, activeQuestions []entity.Question, events []entity.UserAnswer, questionID uint, now time.Time) GateDecision {
	activeIDs := make(map[uint]bool, len(activeQuestions))
	for _, q := range activeQuestions {
		activeIDs[q.ID] = true
	}

	answered := make(map[uint]bool)
	priorForQuestion := 0
	var lastAnswerAt time.Time
	for _, e := range events {
		if !activeIDs[e.QuestionID] {
			continue
		}
		answered[e.QuestionID] = true
		if e.QuestionID == questionID {
			priorForQuestion++
		}
		if e.SubmittedAt.After(lastAnswerAt) {
			lastAnswerAt = e.SubmittedAt
		}
	}

	if priorForQuestion == 0 {
		return GateDecision{Allowed: true, AttemptCycle: 0}
	}

	if len(answered) < len(activeQuestions) {
		return GateDecision{
			Allowed: false,
			Reason:  "This question has already been answered before",
		}
	}

	if !quiz.RetakeDue(lastAnswerAt, now) {
		return GateDecision{
			Allowed: false,
			Reason:  fmt.Sprintf("You can start a new quiz process only after completing it %d days", quiz.FrequencyInDays),
		}
	}

	return GateDecision{Allowed: true, AttemptCycle: priorForQuestion}
}

// CanSubmit проверяет, может ли пользователь прямо сейчас ответить на вопрос викторины
func (s *AnswerService) CanSubmit(userID, quizID, questionID uint, now time.Time) (*GateDecision, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, fmt.Errorf("quiz %d is not active: %w", quizID, apperrors.ErrNotFound)
	}

	activeQuestions, err := s.questionRepo.GetActiveByQuizID(quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz questions: %w", err)
	}
	if len(activeQuestions) == 0 {
		return nil, fmt.Errorf("quiz %d has no active questions: %w", quizID, apperrors.ErrNotFound)
	}

	events, err := s.ledgerRepo.ListByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user answers: %w", err)
	}

	decision := resolveGate(quiz, activeQuestions, events, questionID, now)
	return &decision, nil
}

// SubmitAnswer проверяет допуск и записывает событие ответа в журнал.
// Проверка и запись разнесены, поэтому гонку одновременных отправок закрывает
// уникальный индекс журнала: проигравший получает ErrConflict, дубля не возникает.
func (s *AnswerService) SubmitAnswer(userID, quizID, questionID, answerID uint) (*entity.UserAnswer, error) {
	now := time.Now().UTC()

	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, fmt.Errorf("quiz %d is not active: %w", quizID, apperrors.ErrNotFound)
	}

	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	if question.QuizID != quizID || !question.IsActive {
		return nil, fmt.Errorf("question %d does not belong to quiz %d: %w", questionID, quizID, apperrors.ErrNotFound)
	}

	answer, err := s.answerRepo.GetByID(answerID)
	if err != nil {
		return nil, err
	}
	if answer.QuestionID != questionID {
		return nil, fmt.Errorf("answer %d does not belong to question %d: %w", answerID, questionID, apperrors.ErrNotFound)
	}

	// Отвечать на викторины компании могут только ее активные участники
	membership, err := s.membershipRepo.Get(userID, quiz.CompanyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("user %d is not a member of company %d: %w", userID, quiz.CompanyID, apperrors.ErrForbidden)
		}
		return nil, err
	}
	if !membership.IsActive {
		return nil, fmt.Errorf("membership of user %d in company %d is not active: %w", userID, quiz.CompanyID, apperrors.ErrForbidden)
	}

	activeQuestions, err := s.questionRepo.GetActiveByQuizID(quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz questions: %w", err)
	}

	events, err := s.ledgerRepo.ListByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user answers: %w", err)
	}

	decision := resolveGate(quiz, activeQuestions, events, questionID, now)
	if !decision.Allowed {
		log.Printf("[AnswerService] Отказ в приеме ответа: user=%d quiz=%d question=%d причина=%q",
			userID, quizID, questionID, decision.Reason)
		return nil, fmt.Errorf("%s: %w", decision.Reason, apperrors.ErrForbidden)
	}

	event := &entity.UserAnswer{
		UserID:       userID,
		QuizID:       quizID,
		QuestionID:   questionID,
		AnswerID:     answerID,
		AttemptCycle: decision.AttemptCycle,
		SubmittedAt:  now,
	}

	if err := s.ledgerRepo.Append(event); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			log.Printf("[AnswerService] Конфликт одновременных отправок: user=%d question=%d cycle=%d",
				userID, questionID, decision.AttemptCycle)
			return nil, fmt.Errorf("answer for question %d was submitted concurrently: %w", questionID, apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to append answer event: %w", err)
	}

	log.Printf("[AnswerService] Ответ принят: user=%d quiz=%d question=%d answer=%d cycle=%d",
		userID, quizID, questionID, answerID, decision.AttemptCycle)
	return event, nil
}
