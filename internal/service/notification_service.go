package service

import (
	"log"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
)

// NotificationService предоставляет методы для работы с уведомлениями пользователя
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService создает новый сервис уведомлений
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
	}
}

// Create создает уведомление с непрочитанным статусом
func (s *NotificationService) Create(userID uint, text string) (*entity.Notification, error) {
	notification := &entity.Notification{
		UserID: userID,
		Text:   text,
		Unread: true,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// ListUnread возвращает непрочитанные уведомления пользователя
func (s *NotificationService) ListUnread(userID uint) ([]entity.Notification, error) {
	return s.notificationRepo.ListUnreadByUser(userID)
}

// MarkRead помечает уведомление пользователя прочитанным.
// Возвращает ErrNotFound, если непрочитанного уведомления с таким id
// у пользователя нет; каскадных эффектов нет.
func (s *NotificationService) MarkRead(userID, notificationID uint) (*entity.Notification, error) {
	notification, err := s.notificationRepo.MarkRead(userID, notificationID)
	if err != nil {
		return nil, err
	}
	log.Printf("[NotificationService] Уведомление ID=%d помечено прочитанным пользователем ID=%d",
		notificationID, userID)
	return notification, nil
}
