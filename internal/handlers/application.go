// internal/handlers/application.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/petpal/petpal-backend/internal/forms"
	"github.com/petpal/petpal-backend/internal/i18n"
	"github.com/petpal/petpal-backend/internal/services"
	"github.com/petpal/petpal-backend/internal/utils"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
	adoptionService    *services.AdoptionService
}

func NewApplicationHandler(applicationService *services.ApplicationService, adoptionService *services.AdoptionService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		adoptionService:    adoptionService,
	}
}

type SubmitApplicationRequest struct {
	PetID uuid.UUID             `json:"pet_id" binding:"required"`
	Form  forms.ApplicationForm `json:"form" binding:"required"`
}

type ValidateStepRequest struct {
	Step int                   `json:"step" binding:"required,min=1,max=6"`
	Form forms.ApplicationForm `json:"form"`
}

// POST /applications
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	application, err := h.applicationService.SubmitApplication(userID, req.PetID, &req.Form)
	if err != nil {
		var formErr *services.FormValidationError
		switch {
		case errors.As(err, &formErr):
			utils.FormErrorResponse(c, formErr.Step, formErr.Fields)
		case strings.Contains(err.Error(), "already have"):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyApplicationDuplicate))
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, "pet")
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyApplicationSubmitted),
		"application": application,
	})
}

// POST /applications/validate-step
// Lets the client surface per-field errors for one wizard step before moving
// on, using the same rules the final submission enforces.
func (h *ApplicationHandler) ValidateStep(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req ValidateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	fieldErrors := forms.ValidateStep(req.Step, &req.Form)
	utils.SuccessResponse(c, gin.H{
		"step":   req.Step,
		"valid":  len(fieldErrors) == 0,
		"errors": fieldErrors,
	})
}

// GET /applications/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	applicationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	application, err := h.applicationService.GetApplication(applicationID, userID, isShelterAdmin(c))
	if err != nil {
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		utils.NotFoundResponse(c, "application")
		return
	}

	utils.SuccessResponse(c, gin.H{"application": application})
}

// GET /applications
func (h *ApplicationHandler) ListMyApplications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := services.ApplicationSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
		AdopterID:        &userID,
	}

	applications, total, err := h.applicationService.SearchApplications(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(applications, total, params.PaginationParams))
}

// GET /adoptions
func (h *ApplicationHandler) ListMyAdoptions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := services.AdoptionSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	entries, total, err := h.adoptionService.GetUserHistory(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(entries, total, params.PaginationParams))
}

// GET /adoptions/:id
func (h *ApplicationHandler) GetAdoptionEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	entryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	entry, err := h.adoptionService.GetEntry(entryID, userID, isShelterAdmin(c))
	if err != nil {
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		utils.NotFoundResponse(c, "adoption")
		return
	}

	utils.SuccessResponse(c, gin.H{"adoption": entry})
}
