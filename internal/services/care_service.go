// internal/services/care_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petpal/petpal-backend/internal/models"
	"github.com/petpal/petpal-backend/internal/utils"
)

// CareService keeps the post-adoption care journal.
type CareService struct {
	db *gorm.DB
}

type CreateCareEntryRequest struct {
	PetID      uuid.UUID `json:"pet_id" validate:"required"`
	Type       string    `json:"type" validate:"required,oneof=feeding medical grooming activity note"`
	Title      string    `json:"title" validate:"required,min=1,max=200"`
	Notes      string    `json:"notes,omitempty"`
	OccurredAt time.Time `json:"occurred_at" validate:"required"`
}

type CareSearchParams struct {
	utils.PaginationParams
	PetID *uuid.UUID            `json:"pet_id,omitempty"`
	Type  *models.CareEntryType `json:"type,omitempty"`
}

func NewCareService(db *gorm.DB) *CareService {
	return &CareService{db: db}
}

func (s *CareService) CreateEntry(userID uuid.UUID, req *CreateCareEntryRequest) (*models.CareEntry, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	entry := &models.CareEntry{
		UserID:     userID,
		PetID:      req.PetID,
		Type:       models.CareEntryType(req.Type),
		Title:      req.Title,
		Notes:      req.Notes,
		OccurredAt: req.OccurredAt,
	}

	if err := s.db.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create care entry: %w", err)
	}

	return entry, nil
}

func (s *CareService) ListEntries(userID uuid.UUID, params CareSearchParams) ([]models.CareEntry, int64, error) {
	query := s.db.Model(&models.CareEntry{}).Where("user_id = ?", userID)

	if params.PetID != nil {
		query = query.Where("pet_id = ?", *params.PetID)
	}
	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.Search != "" {
		query = query.Where("title ILIKE ? OR notes ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count care entries: %w", err)
	}

	var entries []models.CareEntry
	query = utils.ApplySort(query, params.PaginationParams, []string{"occurred_at", "created_at"})
	query = utils.ApplyPagination(query, params.PaginationParams)
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list care entries: %w", err)
	}

	return entries, total, nil
}

func (s *CareService) DeleteEntry(entryID, userID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", entryID, userID).Delete(&models.CareEntry{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete care entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("care entry not found")
	}
	return nil
}
