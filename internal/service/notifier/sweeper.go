package notifier

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// Sweeper — периодический обходчик членств, рассылающий напоминания о викторинах.
// Для каждой пары (активное членство, активная викторина компании) действует
// строгая цепочка условий:
//
//	нет ответов                → "викторина доступна"
//	отвечена часть вопросов    → "завершите викторину"
//	отвечены все и срок прошел → "пора пересдать"
//
// Сбой на одной паре логируется и не прерывает прогон.
type Sweeper struct {
	deps *Dependencies
	cfg  *Config
}

// NewSweeper создает новый планировщик напоминаний
func NewSweeper(deps *Dependencies) *Sweeper {
	cfg := deps.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = DefaultLockTTL
	}
	if cfg.LockKey == "" {
		cfg.LockKey = DefaultLockKey
	}
	return &Sweeper{deps: deps, cfg: cfg}
}

// Run запускает цикл прогонов с настроенным интервалом.
// Первый прогон выполняется сразу, завершение — по отмене контекста.
func (s *Sweeper) Run(ctx context.Context) {
	log.Printf("[Notifier] Планировщик запущен, интервал %v", s.cfg.Interval)

	if err := s.RunSweep(ctx, time.Now().UTC()); err != nil {
		log.Printf("[Notifier] Ошибка прогона: %v", err)
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.RunSweep(ctx, time.Now().UTC()); err != nil {
				log.Printf("[Notifier] Ошибка прогона: %v", err)
			}
		case <-ctx.Done():
			log.Printf("[Notifier] Планировщик остановлен: %v", ctx.Err())
			return
		}
	}
}

// RunSweep выполняет один прогон по всем активным членствам.
// Перед обходом берется run-lock в Redis: перекрывающиеся прогоны
// удвоили бы уведомления.
func (s *Sweeper) RunSweep(ctx context.Context, now time.Time) error {
	runID := uuid.New().String()

	if s.deps.CacheRepo != nil {
		acquired, err := s.deps.CacheRepo.SetNX(s.cfg.LockKey, runID, s.cfg.LockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire sweep lock: %w", err)
		}
		if !acquired {
			log.Printf("[Notifier] Прогон %s пропущен: предыдущий прогон еще держит блокировку", runID)
			return nil
		}
		defer func() {
			if delErr := s.deps.CacheRepo.Delete(s.cfg.LockKey); delErr != nil {
				log.Printf("[Notifier] Предупреждение: не удалось снять блокировку прогона %s: %v", runID, delErr)
			}
		}()
	}

	memberships, err := s.deps.MembershipRepo.ListActive()
	if err != nil {
		return fmt.Errorf("failed to list active memberships: %w", err)
	}

	log.Printf("[Notifier] Прогон %s: %d активных членств", runID, len(memberships))

	emitted := 0
	for _, m := range memberships {
		// Кооперативная точка остановки между членствами: каждое уведомление
		// коммитится независимо, прерывание не портит состояние
		select {
		case <-ctx.Done():
			log.Printf("[Notifier] Прогон %s прерван: %v (отправлено %d)", runID, ctx.Err(), emitted)
			return ctx.Err()
		default:
		}

		n, err := s.sweepMembership(m, now)
		if err != nil {
			log.Printf("[Notifier] Прогон %s: ошибка по членству user=%d company=%d: %v",
				runID, m.UserID, m.CompanyID, err)
			continue
		}
		emitted += n
	}

	log.Printf("[Notifier] Прогон %s завершен: отправлено %d уведомлений", runID, emitted)
	return nil
}

// sweepMembership обходит активные викторины компании одного членства
func (s *Sweeper) sweepMembership(m entity.CompanyMembership, now time.Time) (int, error) {
	quizzes, err := s.deps.QuizRepo.ListActiveByCompany(m.CompanyID)
	if err != nil {
		return 0, fmt.Errorf("failed to list company quizzes: %w", err)
	}

	emitted := 0
	for i := range quizzes {
		text, err := s.decideReminder(&quizzes[i], m.UserID, now)
		if err != nil {
			// Сбой одной пары не прерывает обход остальных викторин
			log.Printf("[Notifier] Ошибка по паре user=%d quiz=%d: %v", m.UserID, quizzes[i].ID, err)
			continue
		}
		if text == "" {
			continue
		}
		if _, err := s.deps.Notifications.Create(m.UserID, text); err != nil {
			log.Printf("[Notifier] Не удалось создать уведомление user=%d quiz=%d: %v", m.UserID, quizzes[i].ID, err)
			continue
		}
		emitted++
	}
	return emitted, nil
}

// decideReminder возвращает текст напоминания для пары (пользователь, викторина)
// или пустую строку, если напоминание не требуется
func (s *Sweeper) decideReminder(quiz *entity.Quiz, userID uint, now time.Time) (string, error) {
	questions, err := s.deps.QuestionRepo.GetActiveByQuizID(quiz.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load questions: %w", err)
	}
	if len(questions) == 0 {
		return "", nil
	}

	events, err := s.deps.LedgerRepo.ListByUserAndQuiz(userID, quiz.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load answer events: %w", err)
	}

	activeIDs := make(map[uint]bool, len(questions))
	for _, q := range questions {
		activeIDs[q.ID] = true
	}

	answered := make(map[uint]bool)
	var lastAnswerAt time.Time
	for _, e := range events {
		if !activeIDs[e.QuestionID] {
			continue
		}
		answered[e.QuestionID] = true
		if e.SubmittedAt.After(lastAnswerAt) {
			lastAnswerAt = e.SubmittedAt
		}
	}

	switch {
	case len(answered) == 0:
		return fmt.Sprintf(availableTextFmt, quiz.Name), nil
	case len(answered) < len(questions):
		return fmt.Sprintf(completeTextFmt, quiz.Name), nil
	case quiz.RetakeDue(lastAnswerAt, now):
		return fmt.Sprintf(retakeTextFmt, quiz.FrequencyInDays, quiz.Name), nil
	default:
		return "", nil
	}
}
