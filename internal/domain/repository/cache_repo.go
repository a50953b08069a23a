package repository

import (
	"time"
)

// CacheRepository определяет методы для работы с кешем.
// Кеш — производные данные с доставкой best-effort: корректность ядра никогда
// не зависит от его наличия, устаревание не поднимается выше предупреждения.
type CacheRepository interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error
	Exists(key string) (bool, error)
	// SetNX устанавливает значение ключа, только если ключ не существует.
	// Используется как run-lock прогона планировщика уведомлений.
	SetNX(key string, value interface{}, expiration time.Duration) (bool, error)
}
