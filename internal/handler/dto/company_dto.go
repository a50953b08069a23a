package dto

// CompanyCreateRequest представляет запрос на создание компании
type CompanyCreateRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	Visibility  string `json:"visibility" binding:"omitempty,oneof=hidden visible_to_all"`
}

// CompanyUpdateRequest представляет запрос на обновление компании
type CompanyUpdateRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
	Visibility  *string `json:"visibility,omitempty" binding:"omitempty,oneof=hidden visible_to_all"`
}

// InviteRequest представляет приглашение пользователя в компанию
type InviteRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// RoleGrantRequest представляет назначение роли участнику компании
type RoleGrantRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	RoleType string `json:"role_type" binding:"required,oneof=admin user"`
}
