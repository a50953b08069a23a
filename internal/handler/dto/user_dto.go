package dto

import (
	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// UpdateProfileRequest представляет запрос на обновление профиля.
// Указатели отличают "не менять" от "установить пустое значение".
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Surname  *string `json:"surname,omitempty" binding:"omitempty,max=100"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8,max=72"`
}

// PaginatedUsersResponse представляет пагинированный список пользователей
type PaginatedUsersResponse struct {
	Users   []entity.User `json:"users"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
}
