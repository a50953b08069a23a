package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-api/internal/handler/dto"
	"github.com/yourusername/assessment-api/internal/service"
)

// CompanyHandler обрабатывает запросы, связанные с компаниями,
// членствами, заявками и ролями
type CompanyHandler struct {
	companyService    *service.CompanyService
	membershipService *service.MembershipService
}

// NewCompanyHandler создает новый обработчик компаний
func NewCompanyHandler(
	companyService *service.CompanyService,
	membershipService *service.MembershipService,
) *CompanyHandler {
	return &CompanyHandler{
		companyService:    companyService,
		membershipService: membershipService,
	}
}

// Create обрабатывает запрос на создание компании
func (h *CompanyHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CompanyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.companyService.Create(userID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, company)
}

// Get возвращает компанию по ID
func (h *CompanyHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := contextUintParam(c, "companyID")
	if !ok {
		return
	}

	company, err := h.companyService.GetByID(userID, companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

// List возвращает пагинированный список видимых компаний
func (h *CompanyHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}

	companies, err := h.companyService.ListVisible(page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, companies)
}

// Update обрабатывает запрос на обновление компании
func (h *CompanyHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := contextUintParam(c, "companyID")
	if !ok {
		return
	}

	var req dto.CompanyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.companyService.Update(userID, companyID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

// Deactivate обрабатывает запрос на деактивацию компании
func (h *CompanyHandler) Deactivate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := contextUintParam(c, "companyID")
	if !ok {
		return
	}

	if err := h.companyService.Deactivate(userID, companyID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company deactivated"})
}

// Apply обрабатывает заявку пользователя на вступление в компанию
func (h *CompanyHandler) Apply(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := contextUintParam(c, "companyID")
	if !ok {
		return
	}

	request, err := h.membershipService.Apply(userID, companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// Invite обрабатывает приглашение пользователя в компанию
func (h *CompanyHandler) Invite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := contextUintParam(c, "companyID")
	if !ok {
		return
	}

	var req dto.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.membershipService.Invite(c.Request.Context(), userID, companyID, req.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// AcceptRequest принимает заявку или приглашение
func (h *CompanyHandler) AcceptRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := contextUintParam(c, "requestID")
	if !ok {
		return
	}

	if err := h.membershipService.Accept(userID, requestID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request accepted"})
}

// DeclineRequest отклоняет заявку или приглашение
func (h *CompanyHandler) DeclineRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := contextUintParam(c, "requestID")
	if !ok {
		return
	}

	if err := h.membershipService.Decline(userID, requestID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request declined"})
}

// CancelRequest отзывает заявку или приглашение стороной-инициатором
func (h *CompanyHandler) CancelRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := contextUintParam(c, "requestID")
	if !ok {
		return
	}

	if err := h.membershipService.Cancel(userID, requestID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request cancelled"})
}

// MyRequests возвращает заявки и приглашения аутентифицированного пользователя
func (h *CompanyHandler) MyRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requests, err := h.membershipService.ListUserRequests(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// CompanyRequests возвращает заявки и приглашения компании
func (h *CompanyHandler) CompanyRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := contextUintParam(c, "companyID")
	if !ok {
		return
	}

	requests, err := h.membershipService.ListCompanyRequests(userID, companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// Members возвращает активных участников компании
func (h *CompanyHandler) Members(c *gin.Context) {
	companyID, ok := contextUintParam(c, "companyID")
	if !ok {
		return
	}

	members, err := h.membershipService.ListMembers(companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// Leave выводит аутентифицированного пользователя из компании
func (h *CompanyHandler) Leave(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := contextUintParam(c, "companyID")
	if !ok {
		return
	}

	if err := h.membershipService.Leave(userID, companyID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left the company"})
}

// RemoveMember исключает участника из компании
func (h *CompanyHandler) RemoveMember(c *gin.Context) {
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

	if err := h.membershipService.Remove(actorID, companyID, memberID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

// GrantRole назначает участнику роль в компании
func (h *CompanyHandler) GrantRole(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := contextUintParam(c, "companyID")
	if !ok {
		return
	}

	var req dto.RoleGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.membershipService.GrantRole(actorID, companyID, req.UserID, req.RoleType); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role granted"})
}

// Admins возвращает владельца и администраторов компании
func (h *CompanyHandler) Admins(c *gin.Context) {
	companyID, ok := contextUintParam(c, "companyID")
	if !ok {
		return
	}

	admins, err := h.membershipService.ListAdmins(companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, admins)
}
