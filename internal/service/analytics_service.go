package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	"github.com/yourusername/assessment-api/internal/handler/dto"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// AnalyticsService считает производную статистику по сохраненным результатам.
// Все методы читают QuizResult как есть: пересчет — забота движка подсчета.
type AnalyticsService struct {
	userRepo       repository.UserRepository
	membershipRepo repository.MembershipRepository
	roleRepo       repository.CompanyRoleRepository
	resultRepo     repository.ResultRepository
}

// NewAnalyticsService создает новый сервис аналитики
func NewAnalyticsService(
	userRepo repository.UserRepository,
	membershipRepo repository.MembershipRepository,
	roleRepo repository.CompanyRoleRepository,
	resultRepo repository.ResultRepository,
) *AnalyticsService {
	return &AnalyticsService{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		roleRepo:       roleRepo,
		resultRepo:     resultRepo,
	}
}

// requireManager проверяет право на просмотр аналитики компании
func (s *AnalyticsService) requireManager(actorID, companyID uint) error {
	role, err := s.roleRepo.GetActive(actorID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("user %d cannot view analytics of company %d: %w", actorID, companyID, apperrors.ErrForbidden)
		}
		return err
	}
	if !role.CanManageQuizzes() {
		return fmt.Errorf("user %d cannot view analytics of company %d: %w", actorID, companyID, apperrors.ErrForbidden)
	}
	return nil
}

// inRange проверяет попадание момента в закрытый диапазон дат
func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// quizCorrectCounts группирует правильные результаты по викторинам
func quizCorrectCounts(results []entity.QuizResult, start, end time.Time) []dto.QuizAverageDTO {
	counts := make(map[uint]int)
	order := make([]uint, 0)
	for _, r := range results {
		if !inRange(r.ComputedAt, start, end) {
			continue
		}
		if _, seen := counts[r.QuizID]; !seen {
			order = append(order, r.QuizID)
			counts[r.QuizID] = 0
		}
		if r.IsCorrect {
			counts[r.QuizID]++
		}
	}

	averages := make([]dto.QuizAverageDTO, 0, len(order))
	for _, quizID := range order {
		averages = append(averages, dto.QuizAverageDTO{
			QuizID:       quizID,
			AverageCount: counts[quizID],
		})
	}
	return averages
}

// GetSelfRating возвращает агрегированный счет пользователя —
// сохраненное значение, перезаписываемое движком подсчета
func (s *AnalyticsService) GetSelfRating(userID uint) (int, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return 0, err
	}
	return user.AverageScore, nil
}

// GetSelfQuizAverages возвращает количество правильных ответов пользователя
// по каждой викторине за период
func (s *AnalyticsService) GetSelfQuizAverages(userID uint, start, end time.Time) ([]dto.QuizAverageDTO, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}

	results, err := s.resultRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no results for user %d: %w", userID, apperrors.ErrNotFound)
	}

	return quizCorrectCounts(results, start, end), nil
}

// GetSelfLastCompletions возвращает время последнего пересчета результатов
// по каждой викторине пользователя
func (s *AnalyticsService) GetSelfLastCompletions(userID uint) ([]dto.QuizCompletionDTO, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}

	results, err := s.resultRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	last := make(map[uint]time.Time)
	order := make([]uint, 0)
	for _, r := range results {
		if _, seen := last[r.QuizID]; !seen {
			order = append(order, r.QuizID)
		}
		if r.ComputedAt.After(last[r.QuizID]) {
			last[r.QuizID] = r.ComputedAt
		}
	}

	completions := make([]dto.QuizCompletionDTO, 0, len(order))
	for _, quizID := range order {
		completions = append(completions, dto.QuizCompletionDTO{
			QuizID:             quizID,
			LastCompletionTime: last[quizID],
		})
	}
	return completions, nil
}

// GetCompanyAverages возвращает счет каждого активного участника компании
// за период; доступно владельцу и администраторам
func (s *AnalyticsService) GetCompanyAverages(actorID, companyID uint, start, end time.Time) ([]dto.MemberAverageDTO, error) {
	if err := s.requireManager(actorID, companyID); err != nil {
		return nil, err
	}

	members, err := s.membershipRepo.ListActiveByCompany(companyID)
	if err != nil {
		return nil, err
	}

	averages := make([]dto.MemberAverageDTO, 0, len(members))
	for _, m := range members {
		results, err := s.resultRepo.ListByUser(m.UserID)
		if err != nil {
			log.Printf("[AnalyticsService] Ошибка чтения результатов участника ID=%d: %v", m.UserID, err)
			continue
		}
		if len(results) == 0 {
			continue
		}

		trueCount := 0
		for _, r := range results {
			if r.IsCorrect && inRange(r.ComputedAt, start, end) {
				trueCount++
			}
		}
		averages = append(averages, dto.MemberAverageDTO{
			UserID:       m.UserID,
			AverageCount: trueCount,
		})
	}
	return averages, nil
}

// GetCompanyMemberQuizAverages возвращает счет одного участника компании
// по каждой викторине за период
func (s *AnalyticsService) GetCompanyMemberQuizAverages(actorID, companyID, userID uint, start, end time.Time) ([]dto.QuizAverageDTO, error) {
	if err := s.requireManager(actorID, companyID); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}

	membership, err := s.membershipRepo.Get(userID, companyID)
	if err != nil {
		return nil, err
	}
	if !membership.IsActive {
		return nil, fmt.Errorf("user %d is not an active member of company %d: %w", userID, companyID, apperrors.ErrNotFound)
	}

	results, err := s.resultRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no results for user %d: %w", userID, apperrors.ErrNotFound)
	}

	return quizCorrectCounts(results, start, end), nil
}

// GetCompanyLastCompletions возвращает время последнего пересчета результатов
// каждого активного участника компании
func (s *AnalyticsService) GetCompanyLastCompletions(actorID, companyID uint) ([]dto.MemberCompletionDTO, error) {
	if err := s.requireManager(actorID, companyID); err != nil {
		return nil, err
	}

	members, err := s.membershipRepo.ListActiveByCompany(companyID)
	if err != nil {
		return nil, err
	}

	completions := make([]dto.MemberCompletionDTO, 0, len(members))
	for _, m := range members {
		results, err := s.resultRepo.ListByUser(m.UserID)
		if err != nil {
			log.Printf("[AnalyticsService] Ошибка чтения результатов участника ID=%d: %v", m.UserID, err)
			continue
		}
		if len(results) == 0 {
			continue
		}

		var last time.Time
		for _, r := range results {
			if r.ComputedAt.After(last) {
				last = r.ComputedAt
			}
		}
		completions = append(completions, dto.MemberCompletionDTO{
			UserID:             m.UserID,
			LastCompletionTime: last,
		})
	}
	return completions, nil
}

// ExportCompanyAveragesXLSX выгружает счета участников компании за период
// в книгу Excel
func (s *AnalyticsService) ExportCompanyAveragesXLSX(actorID, companyID uint, start, end time.Time) (*excelize.File, error) {
	averages, err := s.GetCompanyAverages(actorID, companyID, start, end)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Averages"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := []string{"User ID", "Email", "Correct Count", "Period Start", "Period End"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, a := range averages {
		email := ""
		if user, userErr := s.userRepo.GetByID(a.UserID); userErr == nil {
			email = user.Email
		}

		values := []interface{}{a.UserID, email, a.AverageCount, start.Format("2006-01-02"), end.Format("2006-01-02")}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	log.Printf("[AnalyticsService] Экспорт XLSX по компании ID=%d: %d строк", companyID, len(averages))
	return f, nil
}
