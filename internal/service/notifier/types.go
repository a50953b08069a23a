package notifier

import (
	"time"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
)

// Константы планировщика по умолчанию
const (
	DefaultInterval = 24 * time.Hour
	DefaultLockTTL  = time.Hour
	DefaultLockKey  = "notifier:sweep:lock"
)

// Тексты напоминаний. Три ветки взаимоисключающие: за один прогон пара
// (пользователь, викторина) получает не больше одного уведомления.
const (
	availableTextFmt = "Quiz %s is available! Take the test right now!"
	completeTextFmt  = "Complete the quiz %s"
	retakeTextFmt    = "The frequency in days %d has already passed. Take the %s test now!"
)

// Config содержит настройки планировщика напоминаний
type Config struct {
	// Interval — интервал между прогонами в фоновом режиме
	Interval time.Duration

	// LockTTL — время жизни run-lock в Redis. Прогоны не должны
	// перекрываться: параллельный прогон удвоил бы уведомления.
	LockTTL time.Duration

	// LockKey — ключ run-lock в Redis
	LockKey string
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		Interval: DefaultInterval,
		LockTTL:  DefaultLockTTL,
		LockKey:  DefaultLockKey,
	}
}

// NotificationCreator определяет способ доставки напоминания.
// Каждое созданное уведомление коммитится независимо: остановка прогона
// посреди обхода не оставляет частично записанного состояния.
type NotificationCreator interface {
	Create(userID uint, text string) (*entity.Notification, error)
}

// Dependencies содержит зависимости планировщика
type Dependencies struct {
	MembershipRepo repository.MembershipRepository
	QuizRepo       repository.QuizRepository
	QuestionRepo   repository.QuestionRepository
	LedgerRepo     repository.AnswerLedgerRepository
	Notifications  NotificationCreator

	// CacheRepo используется только для run-lock; nil отключает блокировку
	// (разумно в однопроцессных развертываниях и тестах)
	CacheRepo repository.CacheRepository

	Config *Config
}
