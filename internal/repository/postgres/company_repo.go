package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// CompanyRepo реализует repository.CompanyRepository
type CompanyRepo struct {
	db *gorm.DB
}

// NewCompanyRepo создает новый репозиторий компаний
func NewCompanyRepo(db *gorm.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// Create сохраняет новую компанию
func (r *CompanyRepo) Create(company *entity.Company) error {
	return r.db.Create(company).Error
}

// GetByID возвращает компанию по ID
func (r *CompanyRepo) GetByID(id uint) (*entity.Company, error) {
	var company entity.Company
	err := r.db.First(&company, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// Update сохраняет изменения компании
func (r *CompanyRepo) Update(company *entity.Company) error {
	return r.db.Save(company).Error
}

// Deactivate помечает компанию неактивной (мягкое удаление)
func (r *CompanyRepo) Deactivate(companyID uint) error {
	result := r.db.Model(&entity.Company{}).Where("id = ? AND is_active = true", companyID).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListVisible возвращает активные компании, не скрытые из публичных списков
func (r *CompanyRepo) ListVisible(limit, offset int) ([]entity.Company, error) {
	var companies []entity.Company
	err := r.db.Where("is_active = true AND visibility = ?", entity.CompanyVisibilityVisibleToAll).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&companies).Error
	return companies, err
}
