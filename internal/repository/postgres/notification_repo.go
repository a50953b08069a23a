package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// NotificationRepo реализует repository.NotificationRepository
type NotificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo создает новый репозиторий уведомлений
func NewNotificationRepo(db *gorm.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// Create сохраняет новое уведомление
func (r *NotificationRepo) Create(notification *entity.Notification) error {
	return r.db.Create(notification).Error
}

// ListUnreadByUser возвращает непрочитанные уведомления пользователя
func (r *NotificationRepo) ListUnreadByUser(userID uint) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := r.db.Where("user_id = ? AND unread = true", userID).
		Order("id DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkRead помечает уведомление прочитанным и возвращает обновленную запись.
// Условие unread = true делает операцию идемпотентно-строгой: повторная
// пометка уже прочитанного уведомления возвращает apperrors.ErrNotFound.
func (r *NotificationRepo) MarkRead(userID, notificationID uint) (*entity.Notification, error) {
	result := r.db.Model(&entity.Notification{}).
		Where("id = ? AND user_id = ? AND unread = true", notificationID, userID).
		Update("unread", false)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}

	var notification entity.Notification
	if err := r.db.First(&notification, notificationID).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}
