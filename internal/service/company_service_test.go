package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/handler/dto"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// ============================================================================
// Тесты CompanyService
// ============================================================================

func setupCompanyServiceMocks() (*MockCompanyRepository, *MockMembershipRepository, *MockCompanyRoleRepository, *CompanyService) {
	companyRepo := new(MockCompanyRepository)
	membershipRepo := new(MockMembershipRepository)
	roleRepo := new(MockCompanyRoleRepository)
	svc := NewCompanyService(companyRepo, membershipRepo, roleRepo)
	return companyRepo, membershipRepo, roleRepo, svc
}

func TestCompanyService_Create_OwnerGetsMembershipAndRole(t *testing.T) {
	// Arrange
	companyRepo, membershipRepo, roleRepo, svc := setupCompanyServiceMocks()

	companyRepo.On("Create", mock.AnythingOfType("*entity.Company")).Return(nil)
	membershipRepo.On("Save", mock.MatchedBy(func(m *entity.CompanyMembership) bool {
		return m.UserID == 5 && m.IsOwner && m.IsActive
	})).Return(nil)
	roleRepo.On("Save", mock.MatchedBy(func(r *entity.CompanyRole) bool {
		return r.UserID == 5 && r.RoleType == entity.RoleTypeOwner && r.IsActive
	})).Return(nil)

	// Act
	company, err := svc.Create(5, dto.CompanyCreateRequest{Name: "Компания"})

	// Assert: создатель сразу владелец — членство и роль записаны
	require.NoError(t, err)
	require.NotNil(t, company)
	assert.Equal(t, uint(5), company.OwnerID)
	assert.Equal(t, entity.CompanyVisibilityVisibleToAll, company.Visibility, "Видимость по умолчанию — visible_to_all")
	membershipRepo.AssertExpectations(t)
	roleRepo.AssertExpectations(t)
}

func TestCompanyService_GetByID_HiddenCompany_NonMember_NotFound(t *testing.T) {
	// Arrange: скрытая компания для постороннего неотличима от несуществующей
	companyRepo, membershipRepo, _, svc := setupCompanyServiceMocks()

	companyRepo.On("GetByID", uint(1)).Return(&entity.Company{
		ID: 1, OwnerID: 5, Visibility: entity.CompanyVisibilityHidden, IsActive: true,
	}, nil)
	membershipRepo.On("Get", uint(9), uint(1)).Return(nil, apperrors.ErrNotFound)

	// Act
	company, err := svc.GetByID(9, 1)

	// Assert
	assert.Nil(t, company)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCompanyService_GetByID_HiddenCompany_ActiveMember_Visible(t *testing.T) {
	// Arrange
	companyRepo, membershipRepo, _, svc := setupCompanyServiceMocks()

	companyRepo.On("GetByID", uint(1)).Return(&entity.Company{
		ID: 1, OwnerID: 5, Visibility: entity.CompanyVisibilityHidden, IsActive: true,
	}, nil)
	membershipRepo.On("Get", uint(2), uint(1)).Return(activeMembership(2, 1), nil)

	// Act
	company, err := svc.GetByID(2, 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(1), company.ID)
}

func TestCompanyService_Update_NotOwner_Forbidden(t *testing.T) {
	// Arrange: обновить компанию пытается не владелец
	companyRepo, _, _, svc := setupCompanyServiceMocks()
	newName := "Новое имя"

	companyRepo.On("GetByID", uint(1)).Return(activeCompany(1, 5), nil)

	// Act
	company, err := svc.Update(9, 1, dto.CompanyUpdateRequest{Name: &newName})

	// Assert
	assert.Nil(t, company)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	companyRepo.AssertNotCalled(t, "Update")
}

func TestCompanyService_Deactivate_Owner_Success(t *testing.T) {
	// Arrange
	companyRepo, _, _, svc := setupCompanyServiceMocks()

	companyRepo.On("GetByID", uint(1)).Return(activeCompany(1, 5), nil)
	companyRepo.On("Deactivate", uint(1)).Return(nil)

	// Act
	err := svc.Deactivate(5, 1)

	// Assert
	require.NoError(t, err)
	companyRepo.AssertExpectations(t)
}
