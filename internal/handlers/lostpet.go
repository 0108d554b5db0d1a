// internal/handlers/lostpet.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/petpal/petpal-backend/internal/i18n"
	"github.com/petpal/petpal-backend/internal/models"
	"github.com/petpal/petpal-backend/internal/services"
	"github.com/petpal/petpal-backend/internal/utils"
)

type LostPetHandler struct {
	lostPetService *services.LostPetService
}

func NewLostPetHandler(lostPetService *services.LostPetService) *LostPetHandler {
	return &LostPetHandler{
		lostPetService: lostPetService,
	}
}

// POST /lost-pets
func (h *LostPetHandler) CreateReport(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateLostPetReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	report, err := h.lostPetService.CreateReport(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyLostPetReported),
		"report":  report,
	})
}

// GET /lost-pets
func (h *LostPetHandler) SearchReports(c *gin.Context) {
	params := services.LostPetSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
		Species:          c.Query("species"),
	}
	if raw := c.Query("status"); raw != "" {
		status := models.LostPetStatus(raw)
		params.Status = &status
	}

	reports, total, err := h.lostPetService.SearchReports(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(reports, total, params.PaginationParams))
}

// GET /lost-pets/track/:code — public lookup by tracking code
func (h *LostPetHandler) TrackReport(c *gin.Context) {
	report, err := h.lostPetService.GetReportByTrackingCode(c.Param("code"))
	if err != nil {
		utils.NotFoundResponse(c, "lost_pet")
		return
	}

	utils.SuccessResponse(c, gin.H{"report": report})
}

// PUT /lost-pets/:id/status
func (h *LostPetHandler) UpdateReportStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	reportID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "status is required", err.Error())
		return
	}

	report, err := h.lostPetService.UpdateReportStatus(reportID, userID, isShelterAdmin(c), models.LostPetStatus(req.Status))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyLostPetUpdated),
		"report":  report,
	})
}
