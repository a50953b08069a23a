package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// MembershipRepo реализует repository.MembershipRepository
type MembershipRepo struct {
	db *gorm.DB
}

// NewMembershipRepo создает новый репозиторий членств
func NewMembershipRepo(db *gorm.DB) *MembershipRepo {
	return &MembershipRepo{db: db}
}

// Save сохраняет членство; повторное сохранение пары (user, company) обновляет флаги
func (r *MembershipRepo) Save(membership *entity.CompanyMembership) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "company_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_owner", "is_active", "updated_at"}),
	}).Create(membership).Error
}

// Get возвращает членство по паре (user, company)
func (r *MembershipRepo) Get(userID, companyID uint) (*entity.CompanyMembership, error) {
	var membership entity.CompanyMembership
	err := r.db.Where("user_id = ? AND company_id = ?", userID, companyID).First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &membership, nil
}

// ListActive возвращает все активные членства по всем компаниям
func (r *MembershipRepo) ListActive() ([]entity.CompanyMembership, error) {
	var memberships []entity.CompanyMembership
	err := r.db.Where("is_active = true").
		Order("company_id, user_id").
		Find(&memberships).Error
	return memberships, err
}

// ListActiveByCompany возвращает активные членства одной компании
func (r *MembershipRepo) ListActiveByCompany(companyID uint) ([]entity.CompanyMembership, error) {
	var memberships []entity.CompanyMembership
	err := r.db.Where("company_id = ? AND is_active = true", companyID).
		Order("user_id").
		Find(&memberships).Error
	return memberships, err
}

// Deactivate помечает членство неактивным
func (r *MembershipRepo) Deactivate(userID, companyID uint) error {
	result := r.db.Model(&entity.CompanyMembership{}).
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
