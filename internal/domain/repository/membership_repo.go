package repository

import (
	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// MembershipRepository определяет методы для работы с членствами в компаниях
type MembershipRepository interface {
	Save(membership *entity.CompanyMembership) error
	Get(userID, companyID uint) (*entity.CompanyMembership, error)
	// ListActive возвращает все активные членства по всем компаниям.
	// Внешний цикл планировщика уведомлений.
	ListActive() ([]entity.CompanyMembership, error)
	ListActiveByCompany(companyID uint) ([]entity.CompanyMembership, error)
	Deactivate(userID, companyID uint) error
}

// CompanyRequestRepository определяет методы для работы с заявками и приглашениями
type CompanyRequestRepository interface {
	Create(request *entity.CompanyRequest) error
	GetByID(id uint) (*entity.CompanyRequest, error)
	GetPending(userID, companyID uint) (*entity.CompanyRequest, error)
	UpdateStatus(id uint, status string) error
	ListByUser(userID uint) ([]entity.CompanyRequest, error)
	ListByCompany(companyID uint) ([]entity.CompanyRequest, error)
}

// CompanyRoleRepository определяет методы для работы с ролями внутри компаний
type CompanyRoleRepository interface {
	Save(role *entity.CompanyRole) error
	GetActive(userID, companyID uint) (*entity.CompanyRole, error)
	ListActiveByCompany(companyID uint) ([]entity.CompanyRole, error)
	Deactivate(userID, companyID uint) error
}
