// internal/services/reminder_service.go
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

type ReminderService struct {
	db *gorm.DB
}

type CreateReminderRequest struct {
	PetID *uuid.UUID `json:"pet_id,omitempty"`
	Title string     `json:"title" validate:"required,min=1,max=200"`
	Type  string     `json:"type" validate:"required,oneof=vaccination medication grooming vet_visit other"`
	Notes string     `json:"notes,omitempty"`
	DueAt time.Time  `json:"due_at" validate:"required"`
}

type ReminderSearchParams struct {
	utils.PaginationParams
	Type      *models.ReminderType `json:"type,omitempty"`
	Completed *bool                `json:"completed,omitempty"`
	DueBefore *time.Time           `json:"due_before,omitempty"`
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{db: db}
}

func (s *ReminderService) CreateReminder(userID uuid.UUID, req *CreateReminderRequest) (*models.Reminder, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	reminder := &models.Reminder{
		UserID: userID,
		PetID:  req.PetID,
		Title:  req.Title,
		Type:   models.ReminderType(req.Type),
		Notes:  req.Notes,
		DueAt:  req.DueAt,
	}

	if err := s.db.Create(reminder).Error; err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	return reminder, nil
}

func (s *ReminderService) ListReminders(userID uuid.UUID, params ReminderSearchParams) ([]models.Reminder, int64, error) {
	query := s.db.Model(&models.Reminder{}).Where("user_id = ?", userID)

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.Completed != nil {
		query = query.Where("completed = ?", *params.Completed)
	}
	if params.DueBefore != nil {
		query = query.Where("due_at <= ?", *params.DueBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reminders: %w", err)
	}

	var reminders []models.Reminder
	query = utils.ApplySort(query, params.PaginationParams, []string{"due_at", "created_at"})
	query = utils.ApplyPagination(query, params.PaginationParams)
	if err := query.Find(&reminders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reminders: %w", err)
	}

	return reminders, total, nil
}

// CompleteReminder is idempotent; completing twice keeps the first timestamp.
func (s *ReminderService) CompleteReminder(reminderID, userID uuid.UUID) (*models.Reminder, error) {
	reminder, err := s.getOwned(reminderID, userID)
	if err != nil {
		return nil, err
	}

	if reminder.Completed {
		return reminder, nil
	}

	now := time.Now()
	reminder.Completed = true
	reminder.CompletedAt = &now

	if err := s.db.Save(reminder).Error; err != nil {
		return nil, fmt.Errorf("failed to complete reminder: %w", err)
	}

	return reminder, nil
}

func (s *ReminderService) DeleteReminder(reminderID, userID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", reminderID, userID).Delete(&models.Reminder{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete reminder: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("reminder not found")
	}
	return nil
}

func (s *ReminderService) getOwned(reminderID, userID uuid.UUID) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := s.db.Where("id = ? AND user_id = ?", reminderID, userID).First(&reminder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("reminder not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &reminder, nil
}
