package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-api/internal/service"
)

// Формат дат в query-параметрах периода
const dateLayout = "2006-01-02"

// AnalyticsHandler обрабатывает запросы статистики по результатам
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler создает новый обработчик аналитики
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// parseDateRange читает период из query-параметров start_date и end_date.
// Отсутствующий start_date означает "с начала времен", отсутствующий
// end_date — конец текущего дня.
func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	var start time.Time
	end := time.Now().UTC().Truncate(24 * time.Hour).Add(24*time.Hour - time.Nanosecond)

	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date, expected YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		start = parsed
	}

	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date, expected YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		// Закрытая граница: включаем весь указанный день
		end = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must not be before start_date"})
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}

// MyRating возвращает агрегированный счет аутентифицированного пользователя
func (h *AnalyticsHandler) MyRating(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rating, err := h.analyticsService.GetSelfRating(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "average_score": rating})
}

// MyQuizAverages возвращает счет пользователя по каждой викторине за период
func (h *AnalyticsHandler) MyQuizAverages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	averages, err := h.analyticsService.GetSelfQuizAverages(userID, start, end)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, averages)
}

// MyLastCompletions возвращает время последнего пересчета по каждой викторине
func (h *AnalyticsHandler) MyLastCompletions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	completions, err := h.analyticsService.GetSelfLastCompletions(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, completions)
}

// CompanyAverages возвращает счета активных участников компании за период
func (h *AnalyticsHandler) CompanyAverages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := contextUintParam(c, "companyID")
	if !ok {
		return
	}
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	averages, err := h.analyticsService.GetCompanyAverages(userID, companyID, start, end)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, averages)
}

// CompanyMemberQuizAverages возвращает счет участника компании по каждой
// викторине за период
func (h *AnalyticsHandler) CompanyMemberQuizAverages(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := contextUintParam(c, "companyID")
	if !ok {
		return
	}
	memberID, ok := contextUintParam(c, "userID")
	if !ok {
		return
	}
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	averages, err := h.analyticsService.GetCompanyMemberQuizAverages(actorID, companyID, memberID, start, end)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, averages)
}

// CompanyLastCompletions возвращает время последнего пересчета результатов
// каждого активного участника компании
func (h *AnalyticsHandler) CompanyLastCompletions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := contextUintParam(c, "companyID")
	if !ok {
		return
	}

	completions, err := h.analyticsService.GetCompanyLastCompletions(userID, companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, completions)
}

// ExportCompanyAverages выгружает счета участников компании за период
// файлом Excel
func (h *AnalyticsHandler) ExportCompanyAverages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := contextUintParam(c, "companyID")
	if !ok {
		return
	}
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	f, err := h.analyticsService.ExportCompanyAveragesXLSX(userID, companyID, start, end)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("company_%d_averages_%s.xlsx", companyID, time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[AnalyticsHandler] Ошибка записи XLSX в ответ: %v", err)
	}
}
