package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// TokenIssuer выдает токены доступа для аутентифицированных пользователей
type TokenIssuer interface {
	GenerateToken(user *entity.User) (string, error)
}

// AuthService предоставляет методы регистрации и входа
type AuthService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register регистрирует нового пользователя.
// Пароль хешируется хуком BeforeSave сущности при сохранении.
func (s *AuthService) Register(name, surname, email, password string) (*entity.User, error) {
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s is already registered: %w", email, apperrors.ErrConflict)
	}

	user := &entity.User{
		Name:     name,
		Surname:  surname,
		Email:    email,
		Password: password,
		IsActive: true,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("email %s is already registered: %w", email, apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("[AuthService] Зарегистрирован пользователь ID=%d email=%s", user.ID, user.Email)
	return user, nil
}

// Login проверяет учетные данные и выдает токен доступа
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Не раскрываем, что именно неверно: email или пароль
			return "", nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
		}
		return "", nil, err
	}

	if !user.IsActive {
		log.Printf("[AuthService] Попытка входа деактивированного пользователя ID=%d", user.ID)
		return "", nil, fmt.Errorf("account is deactivated: %w", apperrors.ErrUnauthorized)
	}

	if !user.CheckPassword(password) {
		log.Printf("[AuthService] Неверный пароль для пользователя ID=%d", user.ID)
		return "", nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Printf("[AuthService] Успешный вход пользователя ID=%d", user.ID)
	return token, user, nil
}
