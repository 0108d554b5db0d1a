// internal/handlers/care.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/petpal/petpal-backend/internal/i18n"
	"github.com/petpal/petpal-backend/internal/models"
	"github.com/petpal/petpal-backend/internal/services"
	"github.com/petpal/petpal-backend/internal/utils"
)

// CareHandler serves the post-adoption surface: reminders and the care
// journal.
type CareHandler struct {
	reminderService *services.ReminderService
	careService     *services.CareService
}

func NewCareHandler(reminderService *services.ReminderService, careService *services.CareService) *CareHandler {
	return &CareHandler{
		reminderService: reminderService,
		careService:     careService,
	}
}

// POST /reminders
func (h *CareHandler) CreateReminder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	reminder, err := h.reminderService.CreateReminder(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyReminderCreated),
		"reminder": reminder,
	})
}

// GET /reminders
func (h *CareHandler) ListReminders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := services.ReminderSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if raw := c.Query("type"); raw != "" {
		reminderType := models.ReminderType(raw)
		params.Type = &reminderType
	}
	if raw := c.Query("completed"); raw != "" {
		completed := raw == "true"
		params.Completed = &completed
	}
	if raw := c.Query("due_before"); raw != "" {
		if dueBefore, err := time.Parse(time.RFC3339, raw); err == nil {
			params.DueBefore = &dueBefore
		}
	}

	reminders, total, err := h.reminderService.ListReminders(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(reminders, total, params.PaginationParams))
}

// PUT /reminders/:id/complete
func (h *CareHandler) CompleteReminder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	reminderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	reminder, err := h.reminderService.CompleteReminder(reminderID, userID)
	if err != nil {
		utils.NotFoundResponse(c, "reminder")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyReminderCompleted),
		"reminder": reminder,
	})
}

// DELETE /reminders/:id
func (h *CareHandler) DeleteReminder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	reminderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.reminderService.DeleteReminder(reminderID, userID); err != nil {
		utils.NotFoundResponse(c, "reminder")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// POST /care-entries
func (h *CareHandler) CreateCareEntry(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateCareEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	entry, err := h.careService.CreateEntry(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCareEntryCreated),
		"entry":   entry,
	})
}

// GET /care-entries
func (h *CareHandler) ListCareEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := services.CareSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if raw := c.Query("pet_id"); raw != "" {
		if petID, err := uuid.Parse(raw); err == nil {
			params.PetID = &petID
		}
	}
	if raw := c.Query("type"); raw != "" {
		entryType := models.CareEntryType(raw)
		params.Type = &entryType
	}

	entries, total, err := h.careService.ListEntries(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(entries, total, params.PaginationParams))
}

// DELETE /care-entries/:id
func (h *CareHandler) DeleteCareEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	entryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.careService.DeleteEntry(entryID, userID); err != nil {
		utils.NotFoundResponse(c, "care_entry")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}
