package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// CompanyRoleRepo реализует repository.CompanyRoleRepository
type CompanyRoleRepo struct {
	db *gorm.DB
}

// NewCompanyRoleRepo создает новый репозиторий ролей
func NewCompanyRoleRepo(db *gorm.DB) *CompanyRoleRepo {
	return &CompanyRoleRepo{db: db}
}

// Save сохраняет роль пользователя в компании
func (r *CompanyRoleRepo) Save(role *entity.CompanyRole) error {
	return r.db.Save(role).Error
}

// GetActive возвращает активную роль пользователя в компании
func (r *CompanyRoleRepo) GetActive(userID, companyID uint) (*entity.CompanyRole, error) {
	var role entity.CompanyRole
	err := r.db.Where("user_id = ? AND company_id = ? AND is_active = true", userID, companyID).
		First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

// ListActiveByCompany возвращает активные роли компании
func (r *CompanyRoleRepo) ListActiveByCompany(companyID uint) ([]entity.CompanyRole, error) {
	var roles []entity.CompanyRole
	err := r.db.Where("company_id = ? AND is_active = true", companyID).
		Order("user_id").
		Find(&roles).Error
	return roles, err
}

// Deactivate помечает роль пользователя в компании неактивной
func (r *CompanyRoleRepo) Deactivate(userID, companyID uint) error {
	result := r.db.Model(&entity.CompanyRole{}).
		Where("user_id = ? AND company_id = ? AND is_active = true", userID, companyID).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
