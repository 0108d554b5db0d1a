// internal/services/adoption_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petpal/petpal-backend/internal/models"
	"github.com/petpal/petpal-backend/internal/utils"
)

// AdoptionService reads the adopter-facing history cards. Entries are created
// and updated by the application workflow, never directly by adopters.
type AdoptionService struct {
	db *gorm.DB
}

type AdoptionSearchParams struct {
	utils.PaginationParams
	Status *models.AdoptionStatus `json:"status,omitempty"`
}

func NewAdoptionService(db *gorm.DB) *AdoptionService {
	return &AdoptionService{db: db}
}

func (s *AdoptionService) GetUserHistory(userID uuid.UUID, params AdoptionSearchParams) ([]models.AdoptionHistoryEntry, int64, error) {
	query := s.db.Model(&models.AdoptionHistoryEntry{}).Where("user_id = ?", userID)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Search != "" {
		query = query.Where("pet_name ILIKE ? OR pet_breed ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count adoption history: %w", err)
	}

	var entries []models.AdoptionHistoryEntry
	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at", "application_date", "adoption_date"})
	query = utils.ApplyPagination(query, params.PaginationParams)
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list adoption history: %w", err)
	}

	return entries, total, nil
}

func (s *AdoptionService) GetEntry(entryID, requesterID uuid.UUID, isAdmin bool) (*models.AdoptionHistoryEntry, error) {
	var entry models.AdoptionHistoryEntry
	if err := s.db.First(&entry, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("adoption history entry not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !isAdmin && entry.UserID != requesterID {
		return nil, errors.New("unauthorized to view this entry")
	}

	return &entry, nil
}

// GetEntryByApplication resolves the card belonging to one application, used
// when the adopter drills in from the application detail view.
func (s *AdoptionService) GetEntryByApplication(applicationID uuid.UUID) (*models.AdoptionHistoryEntry, error) {
	var entry models.AdoptionHistoryEntry
	if err := s.db.Where("application_id = ?", applicationID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("adoption history entry not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &entry, nil
}
