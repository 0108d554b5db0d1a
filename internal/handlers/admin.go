// internal/handlers/admin.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/petpal/petpal-backend/internal/i18n"
	"github.com/petpal/petpal-backend/internal/models"
	"github.com/petpal/petpal-backend/internal/services"
	"github.com/petpal/petpal-backend/internal/utils"
)

type AdminHandler struct {
	adminService        *services.AdminService
	applicationService  *services.ApplicationService
	verificationService *services.VerificationService
}

func NewAdminHandler(adminService *services.AdminService, applicationService *services.ApplicationService, verificationService *services.VerificationService) *AdminHandler {
	return &AdminHandler{
		adminService:        adminService,
		applicationService:  applicationService,
		verificationService: verificationService,
	}
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes,omitempty"`
}

type UpdateVerificationStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes,omitempty"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active suspended"`
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"stats": stats})
}

// GET /admin/applications
func (h *AdminHandler) ListApplications(c *gin.Context) {
	params := services.ApplicationSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if raw := c.Query("status"); raw != "" {
		status := models.ApplicationStatus(raw)
		params.Status = &status
	}
	if raw := c.Query("pet_id"); raw != "" {
		if petID, err := uuid.Parse(raw); err == nil {
			params.PetID = &petID
		}
	}

	applications, total, err := h.applicationService.SearchApplications(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(applications, total, params.PaginationParams))
}

// PUT /admin/applications/:id/status
func (h *AdminHandler) UpdateApplicationStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	reviewerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	applicationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "status is required", err.Error())
		return
	}

	application, err := h.applicationService.UpdateApplicationStatus(
		applicationID, models.ApplicationStatus(req.Status), reviewerID, req.Notes)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, "application")
		case strings.Contains(err.Error(), "cannot transition"):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyApplicationStatusUpdated),
		"application": application,
	})
}

// POST /admin/applications/:id/retry-notification
func (h *AdminHandler) RetryNotification(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	applicationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	application, err := h.applicationService.RetryNotification(applicationID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "application")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyNotificationRetried),
		"application": application,
	})
}

// POST /admin/applications/:id/finalize
func (h *AdminHandler) FinalizeAdoption(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	applicationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	application, err := h.applicationService.FinalizeAdoption(applicationID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "application")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyApplicationFinalized),
		"application": application,
	})
}

// POST /admin/verifications
func (h *AdminHandler) CreateVerification(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	verification, err := h.verificationService.CreateVerification(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyVerificationCreated),
		"verification": verification,
	})
}

// GET /admin/verifications
func (h *AdminHandler) ListVerifications(c *gin.Context) {
	params := services.VerificationSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if raw := c.Query("status"); raw != "" {
		status := models.VerificationStatus(raw)
		params.Status = &status
	}
	if raw := c.Query("min_score"); raw != "" {
		if minScore, err := strconv.Atoi(raw); err == nil {
			params.MinScore = &minScore
		}
	}

	verifications, total, err := h.verificationService.SearchVerifications(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(verifications, total, params.PaginationParams))
}

// GET /admin/verifications/:id
func (h *AdminHandler) GetVerification(c *gin.Context) {
	verificationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	verification, err := h.verificationService.GetVerification(verificationID)
	if err != nil {
		utils.NotFoundResponse(c, "verification")
		return
	}

	utils.SuccessResponse(c, gin.H{"verification": verification})
}

// PUT /admin/verifications/:id/assessments
func (h *AdminHandler) UpdateVerificationAssessments(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	verificationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateAssessmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	verification, err := h.verificationService.UpdateAssessments(verificationID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "verification")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyVerificationStatusUpdated),
		"verification": verification,
	})
}

// PUT /admin/verifications/:id/status
func (h *AdminHandler) UpdateVerificationStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	reviewerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	verificationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateVerificationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "status is required", err.Error())
		return
	}

	verification, err := h.verificationService.UpdateVerificationStatus(
		verificationID, models.VerificationStatus(req.Status), reviewerID.String(), req.Notes)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, "verification")
		case strings.Contains(err.Error(), "cannot transition"):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyVerificationStatusUpdated),
		"verification": verification,
	})
}

// GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := services.UserSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if raw := c.Query("user_type"); raw != "" {
		userType := models.UserType(raw)
		params.UserType = &userType
	}
	if raw := c.Query("status"); raw != "" {
		status := models.UserStatus(raw)
		params.Status = &status
	}

	users, total, err := h.adminService.SearchUsers(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(users, total, params.PaginationParams))
}

// PUT /admin/users/:id/status
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "status is required", err.Error())
		return
	}

	user, err := h.adminService.UpdateUserStatus(userID, models.UserStatus(req.Status))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "user")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdminActionSuccess),
		"user":    user,
	})
}

// GET /admin/notifications
func (h *AdminHandler) ListNotifications(c *gin.Context) {
	params := services.NotificationListParams{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if raw := c.Query("status"); raw != "" {
		params.Status = &raw
	}

	notifications, total, err := h.adminService.ListNotifications(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(notifications, total, params.PaginationParams))
}

// PUT /admin/notifications/:id/read
func (h *AdminHandler) MarkNotificationRead(c *gin.Context) {
	notificationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	notification, err := h.adminService.MarkNotificationRead(notificationID)
	if err != nil {
		utils.NotFoundResponse(c, "notification")
		return
	}

	utils.SuccessResponse(c, gin.H{"notification": notification})
}

// GET /admin/audit-logs
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	logs, total, err := h.adminService.ListAuditLogs(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(logs, total, params))
}
