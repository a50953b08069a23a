package service

import (
	"log"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	"github.com/yourusername/assessment-api/internal/handler/dto"
)

// UserService предоставляет методы для работы с пользователями
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetByID возвращает пользователя по ID
func (s *UserService) GetByID(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}

// List возвращает пагинированный список пользователей
func (s *UserService) List(page, pageSize int) (*dto.PaginatedUsersResponse, error) {
	// Валидация параметров пагинации
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10 // Значение по умолчанию
	} else if pageSize > 100 {
		pageSize = 100 // Максимальный лимит
	}

	offset := (page - 1) * pageSize

	users, err := s.userRepo.List(pageSize, offset)
	if err != nil {
		log.Printf("[UserService] Ошибка при получении списка пользователей: %v", err)
		return nil, err
	}

	return &dto.PaginatedUsersResponse{
		Users:   users,
		Page:    page,
		PerPage: pageSize,
	}, nil
}

// UpdateProfile обновляет профиль пользователя.
// Новый пароль хешируется хуком BeforeSave при сохранении.
func (s *UserService) UpdateProfile(userID uint, req dto.UpdateProfileRequest) (*entity.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Surname != nil {
		user.Surname = *req.Surname
	}
	if req.Password != nil {
		user.Password = *req.Password
	}

	if err := s.userRepo.Update(user); err != nil {
		log.Printf("[UserService] Ошибка при обновлении профиля пользователя ID=%d: %v", userID, err)
		return nil, err
	}

	return user, nil
}

// Deactivate помечает пользователя неактивным (мягкое удаление)
func (s *UserService) Deactivate(userID uint) error {
	if err := s.userRepo.Deactivate(userID); err != nil {
		return err
	}
	log.Printf("[UserService] Пользователь ID=%d деактивирован", userID)
	return nil
}
