package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	"github.com/yourusername/assessment-api/internal/handler/dto"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// CompanyService предоставляет методы для работы с компаниями
type CompanyService struct {
	companyRepo    repository.CompanyRepository
	membershipRepo repository.MembershipRepository
	roleRepo       repository.CompanyRoleRepository
}

// NewCompanyService создает новый сервис компаний
func NewCompanyService(
	companyRepo repository.CompanyRepository,
	membershipRepo repository.MembershipRepository,
	roleRepo repository.CompanyRoleRepository,
) *CompanyService {
	return &CompanyService{
		companyRepo:    companyRepo,
		membershipRepo: membershipRepo,
		roleRepo:       roleRepo,
	}
}

// Create создает компанию; создатель становится ее владельцем:
// сразу записываются активное членство и роль owner
func (s *CompanyService) Create(ownerID uint, req dto.CompanyCreateRequest) (*entity.Company, error) {
	visibility := req.Visibility
	if visibility == "" {
		visibility = entity.CompanyVisibilityVisibleToAll
	}

	company := &entity.Company{
		Name:        req.Name,
		Description: req.Description,
		Visibility:  visibility,
		OwnerID:     ownerID,
		IsActive:    true,
	}

	if err := s.companyRepo.Create(company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	membership := &entity.CompanyMembership{
		UserID:    ownerID,
		CompanyID: company.ID,
		IsOwner:   true,
		IsActive:  true,
	}
	if err := s.membershipRepo.Save(membership); err != nil {
		return nil, fmt.Errorf("failed to save owner membership: %w", err)
	}

	role := &entity.CompanyRole{
		UserID:    ownerID,
		CompanyID: company.ID,
		RoleType:  entity.RoleTypeOwner,
		IsActive:  true,
	}
	if err := s.roleRepo.Save(role); err != nil {
		return nil, fmt.Errorf("failed to save owner role: %w", err)
	}

	log.Printf("[CompanyService] Создана компания ID=%d владелец ID=%d", company.ID, ownerID)
	return company, nil
}

// GetByID возвращает компанию по ID.
// Скрытая компания видна только ее участникам.
func (s *CompanyService) GetByID(viewerID, companyID uint) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}

	if company.IsHidden() {
		membership, err := s.membershipRepo.Get(viewerID, companyID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.ErrNotFound
			}
			return nil, err
		}
		if !membership.IsActive {
			return nil, apperrors.ErrNotFound
		}
	}

	return company, nil
}

// ListVisible возвращает пагинированный список видимых компаний
func (s *CompanyService) ListVisible(page, pageSize int) ([]entity.Company, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	} else if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize
	return s.companyRepo.ListVisible(pageSize, offset)
}

// Update обновляет компанию; разрешено только владельцу
func (s *CompanyService) Update(actorID, companyID uint, req dto.CompanyUpdateRequest) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID != actorID {
		return nil, fmt.Errorf("only the owner can update company %d: %w", companyID, apperrors.ErrForbidden)
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Visibility != nil {
		company.Visibility = *req.Visibility
	}

	if err := s.companyRepo.Update(company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return company, nil
}

// Deactivate помечает компанию неактивной; разрешено только владельцу
func (s *CompanyService) Deactivate(actorID, companyID uint) error {
	company, err := s.companyRepo.GetByID(companyID)
	if err != nil {
		return err
	}
	if company.OwnerID != actorID {
		return fmt.Errorf("only the owner can deactivate company %d: %w", companyID, apperrors.ErrForbidden)
	}

	if err := s.companyRepo.Deactivate(companyID); err != nil {
		return err
	}
	log.Printf("[CompanyService] Компания ID=%d деактивирована владельцем ID=%d", companyID, actorID)
	return nil
}
