// internal/handlers/pet.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/petpal/petpal-backend/internal/i18n"
	"github.com/petpal/petpal-backend/internal/models"
	"github.com/petpal/petpal-backend/internal/services"
	"github.com/petpal/petpal-backend/internal/utils"
)

type PetHandler struct {
	petService *services.PetService
}

func NewPetHandler(petService *services.PetService) *PetHandler {
	return &PetHandler{
		petService: petService,
	}
}

// GET /pets
func (h *PetHandler) SearchPets(c *gin.Context) {
	params := services.PetSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
		Species:          c.Query("species"),
		Breed:            c.Query("breed"),
		Size:             c.Query("size"),
		Gender:           c.Query("gender"),
	}

	if raw := c.Query("max_age"); raw != "" {
		if maxAge, err := strconv.Atoi(raw); err == nil {
			params.MaxAge = &maxAge
		}
	}
	if raw := c.Query("max_fee"); raw != "" {
		if maxFee, err := strconv.ParseFloat(raw, 64); err == nil {
			params.MaxFee = &maxFee
		}
	}
	if raw := c.Query("status"); raw != "" && isShelterAdmin(c) {
		status := models.PetStatus(raw)
		params.Status = &status
	} else {
		// Public listings only show adoptable pets
		params.Available = true
	}

	pets, total, err := h.petService.SearchPets(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(pets, total, params.PaginationParams))
}

// GET /pets/:id
func (h *PetHandler) GetPet(c *gin.Context) {
	petID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	pet, err := h.petService.GetPet(c.Request.Context(), petID)
	if err != nil {
		utils.NotFoundResponse(c, "pet")
		return
	}

	utils.SuccessResponse(c, gin.H{"pet": pet})
}

// POST /admin/pets
func (h *PetHandler) CreatePet(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	pet, err := h.petService.CreatePet(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPetCreated),
		"pet":     pet,
	})
}

// PUT /admin/pets/:id
func (h *PetHandler) UpdatePet(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	petID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	pet, err := h.petService.UpdatePet(c.Request.Context(), petID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPetUpdated),
		"pet":     pet,
	})
}

// PUT /admin/pets/:id/status
func (h *PetHandler) UpdatePetStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	petID, ok := pathUUID(c, "id")
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

	pet, err := h.petService.UpdatePetStatus(c.Request.Context(), petID, models.PetStatus(req.Status))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPetUpdated),
		"pet":     pet,
	})
}

// DELETE /admin/pets/:id
func (h *PetHandler) DeletePet(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	petID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.petService.DeletePet(c.Request.Context(), petID); err != nil {
		utils.NotFoundResponse(c, "pet")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPetDeleted),
	})
}
