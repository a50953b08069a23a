package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-api/internal/handler/dto"
	"github.com/yourusername/assessment-api/internal/service"
)

// QuizHandler обрабатывает запросы каталога викторин, прием ответов
// и пересчет результатов
type QuizHandler struct {
	quizService    *service.QuizService
	answerService  *service.AnswerService
	scoringService *service.ScoringService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(
	quizService *service.QuizService,
	answerService *service.AnswerService,
	scoringService *service.ScoringService,
) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		answerService:  answerService,
		scoringService: scoringService,
	}
}

// Create обрабатывает запрос на создание викторины с вопросами
func (h *QuizHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.QuizCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.Create(userID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

// Get возвращает викторину с вопросами и вариантами ответов
func (h *QuizHandler) Get(c *gin.Context) {
	quizID, ok := contextUintParam(c, "quizID")
	if !ok {
		return
	}

	quiz, err := h.quizService.GetWithQuestions(quizID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// List возвращает пагинированный список викторин
func (h *QuizHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}

	quizzes, err := h.quizService.List(page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

// ListByCompany возвращает активные викторины компании
func (h *QuizHandler) ListByCompany(c *gin.Context) {
	companyID, ok := contextUintParam(c, "companyID")
	if !ok {
		return
	}

	quizzes, err := h.quizService.ListByCompany(companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

// Update обрабатывает запрос на обновление викторины
func (h *QuizHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	quizID, ok := contextUintParam(c, "quizID")
	if !ok {
		return
	}

	var req dto.QuizUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.Update(userID, quizID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// Deactivate помечает викторину неактивной
func (h *QuizHandler) Deactivate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	quizID, ok := contextUintParam(c, "quizID")
	if !ok {
		return
	}

	if err := h.quizService.Deactivate(userID, quizID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz deactivated"})
}

// UpdateQuestion обрабатывает запрос на обновление вопроса
func (h *QuizHandler) UpdateQuestion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	questionID, ok := contextUintParam(c, "questionID")
	if !ok {
		return
	}

	var req dto.QuestionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.quizService.UpdateQuestion(userID, questionID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// UpdateAnswer обрабатывает запрос на обновление варианта ответа
func (h *QuizHandler) UpdateAnswer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	answerID, ok := contextUintParam(c, "answerID")
	if !ok {
		return
	}

	var req dto.AnswerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.quizService.UpdateAnswer(userID, answerID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}

// CanSubmit возвращает решение допуска без записи события ответа
func (h *QuizHandler) CanSubmit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	quizID, ok := contextUintParam(c, "quizID")
	if !ok {
		return
	}
	questionID, ok := contextUintParam(c, "questionID")
	if !ok {
		return
	}

	decision, err := h.answerService.CanSubmit(userID, quizID, questionID, time.Now().UTC())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"allowed":       decision.Allowed,
		"reason":        decision.Reason,
		"attempt_cycle": decision.AttemptCycle,
	})
}

// SubmitAnswer принимает ответ пользователя на вопрос викторины
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	quizID, ok := contextUintParam(c, "quizID")
	if !ok {
		return
	}

	var req dto.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.answerService.SubmitAnswer(userID, quizID, req.QuestionID, req.AnswerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ComputeResults пересчитывает результаты аутентифицированного пользователя
// по всему журналу ответов
func (h *QuizHandler) ComputeResults(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	results, err := h.scoringService.ComputeResults(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, results)
}

// MyResults возвращает все сохраненные результаты аутентифицированного пользователя
func (h *QuizHandler) MyResults(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	results, err := h.scoringService.GetUserResults(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
