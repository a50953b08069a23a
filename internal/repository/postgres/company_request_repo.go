package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// CompanyRequestRepo реализует repository.CompanyRequestRepository
type CompanyRequestRepo struct {
	db *gorm.DB
}

// NewCompanyRequestRepo создает новый репозиторий заявок
func NewCompanyRequestRepo(db *gorm.DB) *CompanyRequestRepo {
	return &CompanyRequestRepo{db: db}
}

// Create сохраняет новую заявку или приглашение
func (r *CompanyRequestRepo) Create(request *entity.CompanyRequest) error {
	return r.db.Create(request).Error
}

// GetByID возвращает заявку по ID
func (r *CompanyRequestRepo) GetByID(id uint) (*entity.CompanyRequest, error) {
	var request entity.CompanyRequest
	err := r.db.First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// GetPending возвращает ожидающую заявку для пары (user, company), если она есть
func (r *CompanyRequestRepo) GetPending(userID, companyID uint) (*entity.CompanyRequest, error) {
	var request entity.CompanyRequest
	err := r.db.Where("user_id = ? AND company_id = ? AND status = ?",
		userID, companyID, entity.RequestStatusPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// UpdateStatus переводит заявку в новый статус
func (r *CompanyRequestRepo) UpdateStatus(id uint, status string) error {
	result := r.db.Model(&entity.CompanyRequest{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListByUser возвращает заявки пользователя
func (r *CompanyRequestRepo) ListByUser(userID uint) ([]entity.CompanyRequest, error) {
	var requests []entity.CompanyRequest
	err := r.db.Where("user_id = ?", userID).Order("id DESC").Find(&requests).Error
	return requests, err
}

// ListByCompany возвращает заявки компании
func (r *CompanyRequestRepo) ListByCompany(companyID uint) ([]entity.CompanyRequest, error) {
	var requests []entity.CompanyRequest
	err := r.db.Where("company_id = ?", companyID).Order("id DESC").Find(&requests).Error
	return requests, err
}
