package repository

import (
	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// NotificationRepository определяет методы для работы с уведомлениями
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	ListUnreadByUser(userID uint) ([]entity.Notification, error)
	// MarkRead переводит непрочитанное уведомление пользователя в прочитанные.
	// Возвращает apperrors.ErrNotFound, если непрочитанного уведомления с таким id
	// у пользователя нет.
	MarkRead(userID, notificationID uint) (*entity.Notification, error)
}
