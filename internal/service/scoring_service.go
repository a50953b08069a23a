package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
)

// Время жизни кешированного счета пользователя
const averageScoreCacheTTL = 24 * time.Hour

// ScoringService превращает журнал ответов в производные результаты
// и агрегированный счет пользователя
type ScoringService struct {
	userRepo   repository.UserRepository
	answerRepo repository.AnswerRepository
	ledgerRepo repository.AnswerLedgerRepository
	resultRepo repository.ResultRepository
	cacheRepo  repository.CacheRepository
}

// NewScoringService создает новый движок подсчета результатов
func NewScoringService(
	userRepo repository.UserRepository,
	answerRepo repository.AnswerRepository,
	ledgerRepo repository.AnswerLedgerRepository,
	resultRepo repository.ResultRepository,
	cacheRepo repository.CacheRepository,
) *ScoringService {
	return &ScoringService{
		userRepo:   userRepo,
		answerRepo: answerRepo,
		ledgerRepo: ledgerRepo,
		resultRepo: resultRepo,
		cacheRepo:  cacheRepo,
	}
}

// ComputeResults пересчитывает результаты пользователя по всему журналу ответов.
//
// На каждое событие журнала создается ровно одна строка QuizResult: корректность
// разрешается по флагу варианта ответа в момент вызова, поэтому более поздняя
// правка корректности применяется ретроактивно. Повторный вызов без новых
// событий создает еще одну такую же партию строк и удваивает агрегированный
// счет — вызывающая сторона не должна запускать пересчет дважды по одной и
// той же партии ответов.
func (s *ScoringService) ComputeResults(userID uint) ([]entity.QuizResult, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	events, err := s.ledgerRepo.ListByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answer events: %w", err)
	}

	if len(events) == 0 {
		log.Printf("[ScoringService] Журнал ответов пользователя ID=%d пуст, пересчет не требуется", user.ID)
		return []entity.QuizResult{}, nil
	}

	// Дубликаты событий по одной паре (викторина, вопрос) в рамках одного цикла —
	// аномалия данных: журнал защищен уникальным индексом, но исторические записи
	// могли попасть до его введения. Диагностируем и продолжаем: каждая строка
	// журнала дает свою строку результата.
	seen := make(map[string]int, len(events))
	for _, e := range events {
		key := fmt.Sprintf("%d:%d:%d", e.QuizID, e.QuestionID, e.AttemptCycle)
		seen[key]++
		if seen[key] > 1 {
			log.Printf("[ScoringService] Аномалия данных: дубликат события ответа user=%d quiz=%d question=%d cycle=%d",
				user.ID, e.QuizID, e.QuestionID, e.AttemptCycle)
		}
	}

	computedAt := time.Now().UTC()
	results := make([]entity.QuizResult, 0, len(events))
	for _, e := range events {
		answer, err := s.answerRepo.GetByID(e.AnswerID)
		if err != nil {
			// Результаты не пишем вовсе: частичная партия хуже отложенного пересчета
			return nil, fmt.Errorf("failed to resolve answer %d for event %d: %w", e.AnswerID, e.ID, err)
		}

		results = append(results, entity.QuizResult{
			UserID:       user.ID,
			QuizID:       e.QuizID,
			QuestionID:   e.QuestionID,
			UserAnswerID: e.ID,
			IsCorrect:    answer.IsCorrect,
			ComputedAt:   computedAt,
		})
	}

	if err := s.resultRepo.SaveBatch(results); err != nil {
		return nil, fmt.Errorf("failed to save results batch: %w", err)
	}

	// Агрегат пересчитывается по ВСЕМ сохраненным строкам, не только по новой
	// партии, и полностью перезаписывает сохраненное значение
	correct, err := s.resultRepo.CountCorrect(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count correct results: %w", err)
	}
	if err := s.userRepo.UpdateAverageScore(user.ID, int(correct)); err != nil {
		return nil, fmt.Errorf("failed to update average score: %w", err)
	}

	// Кеш — побочный канал чтения; его недоступность не влияет на пересчет
	if s.cacheRepo != nil {
		cacheKey := fmt.Sprintf("user:%d:average_score", user.ID)
		if cacheErr := s.cacheRepo.Set(cacheKey, correct, averageScoreCacheTTL); cacheErr != nil {
			log.Printf("[ScoringService] Предупреждение: не удалось обновить кеш счета для пользователя ID=%d: %v",
				user.ID, cacheErr)
		}
	}

	log.Printf("[ScoringService] Пересчет завершен: user=%d событий=%d правильных всего=%d",
		user.ID, len(results), correct)
	return results, nil
}

// GetUserResults возвращает все сохраненные результаты пользователя
func (s *ScoringService) GetUserResults(userID uint) ([]entity.QuizResult, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}
	return s.resultRepo.ListByUser(userID)
}
