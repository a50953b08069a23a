package repository

import (
	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	UpdateProfile(userID uint, updates map[string]interface{}) error
	// UpdateAverageScore перезаписывает агрегированный счет пользователя.
	// Вызывается только движком подсчета, значение никогда не инкрементируется.
	UpdateAverageScore(userID uint, score int) error
	Deactivate(userID uint) error
	List(limit, offset int) ([]entity.User, error)
}
