package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	"github.com/yourusername/assessment-api/internal/handler/dto"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// Минимальные размеры викторины. Проверяются при создании, выше по потоку
// относительно проверки допуска к ответам: вырожденные викторины из одного
// вопроса не должны попадать в каталог.
const (
	MinQuestionsPerQuiz   = 2
	MinAnswersPerQuestion = 2
)

// QuizService предоставляет методы для работы с каталогом викторин
type QuizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	companyRepo  repository.CompanyRepository
	roleRepo     repository.CompanyRoleRepository
}

// NewQuizService создает новый сервис викторин
func NewQuizService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	companyRepo repository.CompanyRepository,
	roleRepo repository.CompanyRoleRepository,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		companyRepo:  companyRepo,
		roleRepo:     roleRepo,
	}
}

// requireManager проверяет, что пользователь может управлять викторинами компании
func (s *QuizService) requireManager(actorID, companyID uint) error {
	role, err := s.roleRepo.GetActive(actorID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("user %d cannot manage quizzes of company %d: %w", actorID, companyID, apperrors.ErrForbidden)
		}
		return err
	}
	if !role.CanManageQuizzes() {
		return fmt.Errorf("user %d cannot manage quizzes of company %d: %w", actorID, companyID, apperrors.ErrForbidden)
	}
	return nil
}

// Create создает викторину вместе с вопросами и вариантами ответов.
// Викторина должна содержать минимум два вопроса, каждый вопрос — минимум
// два варианта ответа, среди которых есть правильный.
func (s *QuizService) Create(authorID uint, req dto.QuizCreateRequest) (*entity.Quiz, error) {
	company, err := s.companyRepo.GetByID(req.CompanyID)
	if err != nil {
		return nil, err
	}
	if !company.IsActive {
		return nil, fmt.Errorf("company %d is not active: %w", req.CompanyID, apperrors.ErrNotFound)
	}

	if err := s.requireManager(authorID, req.CompanyID); err != nil {
		return nil, err
	}

	if len(req.Questions) < MinQuestionsPerQuiz {
		return nil, fmt.Errorf("quiz must have at least %d questions: %w", MinQuestionsPerQuiz, apperrors.ErrValidation)
	}

	questions := make([]entity.Question, 0, len(req.Questions))
	for i, q := range req.Questions {
		if len(q.Answers) < MinAnswersPerQuestion {
			return nil, fmt.Errorf("question #%d must have at least %d answer options: %w",
				i+1, MinAnswersPerQuestion, apperrors.ErrValidation)
		}

		hasCorrect := false
		answers := make([]entity.Answer, 0, len(q.Answers))
		for _, a := range q.Answers {
			if a.IsCorrect {
				hasCorrect = true
			}
			answers = append(answers, entity.Answer{
				Text:      a.Text,
				IsCorrect: a.IsCorrect,
			})
		}
		if !hasCorrect {
			return nil, fmt.Errorf("question #%d must have a correct answer option: %w", i+1, apperrors.ErrValidation)
		}

		questions = append(questions, entity.Question{
			Text:     q.Text,
			IsActive: true,
			Answers:  answers,
		})
	}

	quiz := &entity.Quiz{
		CompanyID:       req.CompanyID,
		AuthorID:        authorID,
		Name:            req.Name,
		Description:     req.Description,
		FrequencyInDays: req.FrequencyInDays,
		IsActive:        true,
		Questions:       questions,
	}

	if err := s.quizRepo.CreateWithQuestions(quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	// Ассоциации сохранены каскадно, но QuizID вариантов ответов GORM
	// не проставляет: внешний ключ ведет на вопрос. Дозаполняем для
	// денормализованной колонки.
	s.backfillAnswerQuizIDs(quiz)

	log.Printf("[QuizService] Создана викторина ID=%d компании ID=%d (%d вопросов)",
		quiz.ID, quiz.CompanyID, len(quiz.Questions))
	return quiz, nil
}

// backfillAnswerQuizIDs проставляет quiz_id вариантам ответов после
// каскадного создания
func (s *QuizService) backfillAnswerQuizIDs(quiz *entity.Quiz) {
	for qi := range quiz.Questions {
		for ai := range quiz.Questions[qi].Answers {
			answer := &quiz.Questions[qi].Answers[ai]
			if answer.QuizID != 0 {
				continue
			}
			answer.QuizID = quiz.ID
			if err := s.answerRepo.Update(answer); err != nil {
				log.Printf("[QuizService] Предупреждение: не удалось проставить quiz_id варианту ответа ID=%d: %v",
					answer.ID, err)
			}
		}
	}
}

// GetWithQuestions возвращает викторину вместе с вопросами и вариантами ответов
func (s *QuizService) GetWithQuestions(quizID uint) (*entity.Quiz, error) {
	return s.quizRepo.GetWithQuestions(quizID)
}

// List возвращает пагинированный список викторин
func (s *QuizService) List(page, pageSize int) ([]entity.Quiz, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	} else if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize
	return s.quizRepo.List(pageSize, offset)
}

// ListByCompany возвращает активные викторины компании
func (s *QuizService) ListByCompany(companyID uint) ([]entity.Quiz, error) {
	if _, err := s.companyRepo.GetByID(companyID); err != nil {
		return nil, err
	}
	return s.quizRepo.ListActiveByCompany(companyID)
}

// Update обновляет викторину. Правка периодичности применяется только
// проспективно: уже завершенные попытки не пересматриваются.
func (s *QuizService) Update(actorID, quizID uint, req dto.QuizUpdateRequest) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}

	if err := s.requireManager(actorID, quiz.CompanyID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		quiz.Name = *req.Name
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.FrequencyInDays != nil {
		quiz.FrequencyInDays = *req.FrequencyInDays
	}

	if err := s.quizRepo.Update(quiz); err != nil {
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}
	return quiz, nil
}

// Deactivate помечает викторину неактивной (мягкое удаление)
func (s *QuizService) Deactivate(actorID, quizID uint) error {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return err
	}

	if err := s.requireManager(actorID, quiz.CompanyID); err != nil {
		return err
	}

	if err := s.quizRepo.Deactivate(quizID); err != nil {
		return err
	}
	log.Printf("[QuizService] Викторина ID=%d деактивирована пользователем ID=%d", quizID, actorID)
	return nil
}

// UpdateQuestion обновляет вопрос викторины
func (s *QuizService) UpdateQuestion(actorID, questionID uint, req dto.QuestionUpdateRequest) (*entity.Question, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.GetByID(question.QuizID)
	if err != nil {
		return nil, err
	}
	if err := s.requireManager(actorID, quiz.CompanyID); err != nil {
		return nil, err
	}

	if req.Text != nil {
		question.Text = *req.Text
	}
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}

	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return question, nil
}

// UpdateAnswer обновляет вариант ответа. Правка флага корректности
// ретроактивно влияет на последующие пересчеты результатов.
func (s *QuizService) UpdateAnswer(actorID, answerID uint, req dto.AnswerUpdateRequest) (*entity.Answer, error) {
	answer, err := s.answerRepo.GetByID(answerID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.GetByID(answer.QuizID)
	if err != nil {
		return nil, err
	}
	if err := s.requireManager(actorID, quiz.CompanyID); err != nil {
		return nil, err
	}

	if req.Text != nil {
		answer.Text = *req.Text
	}
	if req.IsCorrect != nil {
		answer.IsCorrect = *req.IsCorrect
	}

	if err := s.answerRepo.Update(answer); err != nil {
		return nil, fmt.Errorf("failed to update answer: %w", err)
	}
	return answer, nil
}
