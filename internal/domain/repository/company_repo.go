package repository

import (
	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// CompanyRepository определяет методы для работы с компаниями
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id uint) (*entity.Company, error)
	Update(company *entity.Company) error
	Deactivate(companyID uint) error
	// ListVisible возвращает активные компании, не скрытые из публичных списков
	ListVisible(limit, offset int) ([]entity.Company, error)
}
