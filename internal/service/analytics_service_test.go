package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// ============================================================================
// Тесты AnalyticsService
// ============================================================================

func setupAnalyticsServiceMocks() (*MockUserRepository, *MockMembershipRepository, *MockCompanyRoleRepository, *MockResultRepository, *AnalyticsService) {
	userRepo := new(MockUserRepository)
	membershipRepo := new(MockMembershipRepository)
	roleRepo := new(MockCompanyRoleRepository)
	resultRepo := new(MockResultRepository)
	svc := NewAnalyticsService(userRepo, membershipRepo, roleRepo, resultRepo)
	return userRepo, membershipRepo, roleRepo, resultRepo, svc
}

func analyticsRange() (time.Time, time.Time) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	return start, end
}

func TestAnalyticsService_GetSelfRating_ReturnsStoredScore(t *testing.T) {
	// Arrange: возвращается сохраненный агрегат, без пересчета
	userRepo, _, _, resultRepo, svc := setupAnalyticsServiceMocks()

	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, AverageScore: 7}, nil)

	// Act
	rating, err := svc.GetSelfRating(1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 7, rating)
	resultRepo.AssertNotCalled(t, "CountCorrect")
}

func TestAnalyticsService_GetSelfQuizAverages_GroupsByQuiz(t *testing.T) {
	// Arrange: результаты по двум викторинам, часть вне периода
	userRepo, _, _, resultRepo, svc := setupAnalyticsServiceMocks()
	start, end := analyticsRange()
	inPeriod := start.Add(24 * time.Hour)
	outOfPeriod := start.Add(-24 * time.Hour)

	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1}, nil)
	resultRepo.On("ListByUser", uint(1)).Return([]entity.QuizResult{
		{UserID: 1, QuizID: 10, IsCorrect: true, ComputedAt: inPeriod},
		{UserID: 1, QuizID: 10, IsCorrect: false, ComputedAt: inPeriod},
		{UserID: 1, QuizID: 20, IsCorrect: true, ComputedAt: inPeriod},
		{UserID: 1, QuizID: 20, IsCorrect: true, ComputedAt: outOfPeriod},
	}, nil)

	// Act
	averages, err := svc.GetSelfQuizAverages(1, start, end)

	// Assert: счет считается только по строкам внутри периода
	require.NoError(t, err)
	require.Len(t, averages, 2)
	assert.Equal(t, uint(10), averages[0].QuizID)
	assert.Equal(t, 1, averages[0].AverageCount)
	assert.Equal(t, uint(20), averages[1].QuizID)
	assert.Equal(t, 1, averages[1].AverageCount)
}

func TestAnalyticsService_GetSelfQuizAverages_NoResults_NotFound(t *testing.T) {
	// Arrange
	userRepo, _, _, resultRepo, svc := setupAnalyticsServiceMocks()
	start, end := analyticsRange()

	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1}, nil)
	resultRepo.On("ListByUser", uint(1)).Return([]entity.QuizResult{}, nil)

	// Act
	averages, err := svc.GetSelfQuizAverages(1, start, end)

	// Assert
	assert.Nil(t, averages)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAnalyticsService_GetSelfLastCompletions_PicksLatest(t *testing.T) {
	// Arrange: по викторине несколько пересчетов — берется последний
	userRepo, _, _, resultRepo, svc := setupAnalyticsServiceMocks()
	t1 := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1}, nil)
	resultRepo.On("ListByUser", uint(1)).Return([]entity.QuizResult{
		{UserID: 1, QuizID: 10, ComputedAt: t1},
		{UserID: 1, QuizID: 10, ComputedAt: t2},
	}, nil)

	// Act
	completions, err := svc.GetSelfLastCompletions(1)

	// Assert
	require.NoError(t, err)
	require.Len(t, completions, 1)
	assert.Equal(t, t2, completions[0].LastCompletionTime)
}

func TestAnalyticsService_GetCompanyAverages_NotManager_Forbidden(t *testing.T) {
	// Arrange: статистику компании запрашивает обычный участник
	_, _, roleRepo, resultRepo, svc := setupAnalyticsServiceMocks()
	start, end := analyticsRange()

	roleRepo.On("GetActive", uint(2), uint(1)).Return(&entity.CompanyRole{
		UserID: 2, CompanyID: 1, RoleType: entity.RoleTypeUser, IsActive: true,
	}, nil)

	// Act
	averages, err := svc.GetCompanyAverages(2, 1, start, end)

	// Assert
	assert.Nil(t, averages)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	resultRepo.AssertNotCalled(t, "ListByUser")
}

func TestAnalyticsService_GetCompanyAverages_MemberReadFailure_Skipped(t *testing.T) {
	// Arrange: чтение результатов одного участника падает —
	// остальные все равно попадают в отчет
	_, membershipRepo, roleRepo, resultRepo, svc := setupAnalyticsServiceMocks()
	start, end := analyticsRange()
	inPeriod := start.Add(24 * time.Hour)

	roleRepo.On("GetActive", uint(5), uint(1)).Return(adminRole(5, 1), nil)
	membershipRepo.On("ListActiveByCompany", uint(1)).Return([]entity.CompanyMembership{
		{UserID: 2, CompanyID: 1, IsActive: true},
		{UserID: 3, CompanyID: 1, IsActive: true},
	}, nil)
	resultRepo.On("ListByUser", uint(2)).Return(nil, errors.New("connection reset"))
	resultRepo.On("ListByUser", uint(3)).Return([]entity.QuizResult{
		{UserID: 3, QuizID: 10, IsCorrect: true, ComputedAt: inPeriod},
	}, nil)

	// Act
	averages, err := svc.GetCompanyAverages(5, 1, start, end)

	// Assert
	require.NoError(t, err)
	require.Len(t, averages, 1)
	assert.Equal(t, uint(3), averages[0].UserID)
	assert.Equal(t, 1, averages[0].AverageCount)
}

func TestAnalyticsService_GetCompanyMemberQuizAverages_InactiveMember_NotFound(t *testing.T) {
	// Arrange: участник больше не активен в компании
	userRepo, membershipRepo, roleRepo, _, svc := setupAnalyticsServiceMocks()
	start, end := analyticsRange()

	roleRepo.On("GetActive", uint(5), uint(1)).Return(adminRole(5, 1), nil)
	userRepo.On("GetByID", uint(2)).Return(&entity.User{ID: 2}, nil)
	membershipRepo.On("Get", uint(2), uint(1)).Return(&entity.CompanyMembership{
		UserID: 2, CompanyID: 1, IsActive: false,
	}, nil)

	// Act
	averages, err := svc.GetCompanyMemberQuizAverages(5, 1, 2, start, end)

	// Assert
	assert.Nil(t, averages)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAnalyticsService_ExportCompanyAveragesXLSX_WritesRows(t *testing.T) {
	// Arrange
	userRepo, membershipRepo, roleRepo, resultRepo, svc := setupAnalyticsServiceMocks()
	start, end := analyticsRange()
	inPeriod := start.Add(24 * time.Hour)

	roleRepo.On("GetActive", uint(5), uint(1)).Return(adminRole(5, 1), nil)
	membershipRepo.On("ListActiveByCompany", uint(1)).Return([]entity.CompanyMembership{
		{UserID: 2, CompanyID: 1, IsActive: true},
	}, nil)
	resultRepo.On("ListByUser", uint(2)).Return([]entity.QuizResult{
		{UserID: 2, QuizID: 10, IsCorrect: true, ComputedAt: inPeriod},
		{UserID: 2, QuizID: 10, IsCorrect: false, ComputedAt: inPeriod},
	}, nil)
	userRepo.On("GetByID", uint(2)).Return(&entity.User{ID: 2, Email: "member@example.com"}, nil)

	// Act
	f, err := svc.ExportCompanyAveragesXLSX(5, 1, start, end)

	// Assert: заголовок и строка участника на листе Averages
	require.NoError(t, err)
	require.NotNil(t, f)

	header, err := f.GetCellValue("Averages", "A1")
	require.NoError(t, err)
	assert.Equal(t, "User ID", header)

	email, err := f.GetCellValue("Averages", "B2")
	require.NoError(t, err)
	assert.Equal(t, "member@example.com", email)

	count, err := f.GetCellValue("Averages", "C2")
	require.NoError(t, err)
	assert.Equal(t, "1", count)
}
