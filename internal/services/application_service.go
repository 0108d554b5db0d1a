// internal/services/application_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/petpal/petpal-backend/internal/database"
	"github.com/petpal/petpal-backend/internal/forms"
	"github.com/petpal/petpal-backend/internal/models"
	"github.com/petpal/petpal-backend/internal/utils"
)

type ApplicationService struct {
	db       *gorm.DB
	notifier NotificationSender
}

// FormValidationError reports the first failing step of the adoption form
// together with its field-level messages.
type FormValidationError struct {
	Step   int
	Fields forms.Errors
}

func (e *FormValidationError) Error() string {
	return fmt.Sprintf("application form step %d has %d invalid fields", e.Step, len(e.Fields))
}

type ApplicationSearchParams struct {
	utils.PaginationParams
	AdopterID *uuid.UUID                `json:"adopter_id,omitempty"`
	PetID     *uuid.UUID                `json:"pet_id,omitempty"`
	Status    *models.ApplicationStatus `json:"status,omitempty"`
}

func NewApplicationService(db *gorm.DB, notifier NotificationSender) *ApplicationService {
	return &ApplicationService{
		db:       db,
		notifier: notifier,
	}
}

// SubmitApplication validates the whole form and, in a single transaction,
// creates the application record and its adoption-history entry. A failing
// form performs no persistence calls at all.
func (s *ApplicationService) SubmitApplication(adopterID, petID uuid.UUID, form *forms.ApplicationForm) (*models.Application, error) {
	if step, fieldErrs := forms.FirstInvalidStep(form); step != 0 {
		return nil, &FormValidationError{Step: step, Fields: fieldErrs}
	}

	// Verify the pet exists and is adoptable
	var pet models.Pet
	if err := s.db.First(&pet, petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("pet not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if pet.Status != models.PetStatusAvailable {
		return nil, errors.New("pet is not available for adoption")
	}

	// A second submission for the same pet while one is still open is a
	// duplicate, not a new application.
	var existing models.Application
	if err := s.db.Where("pet_id = ? AND adopter_id = ? AND status IN ?",
		petID, adopterID, []models.ApplicationStatus{models.ApplicationStatusPending, models.ApplicationStatusUnderReview}).
		First(&existing).Error; err == nil {
		return nil, errors.New("you already have an open application for this pet")
	}

	now := time.Now()
	timeline := models.NewTimeline(now)

	application := &models.Application{
		PetID:               petID,
		AdopterID:           adopterID,
		AdopterName:         form.FirstName + " " + form.LastName,
		AdopterEmail:        form.Email,
		Status:              models.ApplicationStatusPending,
		SubmittedAt:         now,
		Timeline:            timeline,
		Progress:            timeline.Progress(),
		CurrentStep:         timeline.CurrentStep(),
		NotificationHistory: models.NotificationHistory{},
		FormData:            formSnapshot(form),
	}

	historyEntry := &models.AdoptionHistoryEntry{
		UserID:          adopterID,
		PetID:           petID,
		PetName:         pet.Name,
		PetBreed:        pet.Breed,
		PetImage:        pet.FirstImage(),
		Status:          models.AdoptionStatusPending,
		ApplicationDate: now,
		ShelterName:     pet.ShelterName,
		ShelterContact:  pet.ShelterContact,
	}

	// Both writes commit together or not at all; a history failure cannot
	// leave an orphaned application behind.
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(application).Error; err != nil {
			return fmt.Errorf("failed to create application: %w", err)
		}

		historyEntry.ApplicationID = application.ID
		if err := tx.Create(historyEntry).Error; err != nil {
			return fmt.Errorf("failed to create adoption history entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	application.Pet = &pet

	// Shelter inbox, best effort
	go func() {
		if err := s.notifier.NotifyNewApplication(application); err != nil {
			logrus.WithError(err).Warn("Failed to create shelter notification for new application")
		}
	}()

	return application, nil
}

// UpdateApplicationStatus applies a guarded status transition. The status
// write lands before the notification is attempted; the delivery outcome is
// appended to the notification history either way.
func (s *ApplicationService) UpdateApplicationStatus(applicationID uuid.UUID, newStatus models.ApplicationStatus, reviewerID uuid.UUID, notes string) (*models.Application, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("unknown application status %q", newStatus)
	}

	var application models.Application
	if err := s.db.First(&application, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("application not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !application.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("cannot transition application from %s to %s", application.Status, newStatus)
	}

	now := time.Now()
	application.Status = newStatus
	application.ReviewedBy = &reviewerID
	application.ReviewedAt = &now
	if notes != "" {
		application.Notes = notes
	}

	application.Timeline = application.Timeline.CompleteThrough(timelineCompletionFor(newStatus, application.Timeline), now)
	application.Progress = application.Timeline.Progress()
	application.CurrentStep = application.Timeline.CurrentStep()

	if err := s.db.Save(&application).Error; err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	// Keep the adopter-facing history entry in step with terminal decisions.
	if adoptionStatus, ok := adoptionStatusFor(newStatus); ok {
		if err := s.db.Model(&models.AdoptionHistoryEntry{}).
			Where("application_id = ?", application.ID).
			Update("status", adoptionStatus).Error; err != nil {
			logrus.WithError(err).Warn("Failed to sync adoption history status")
		}
	}

	s.recordNotification(&application, newStatus)

	if err := s.db.Save(&application).Error; err != nil {
		return nil, fmt.Errorf("failed to record notification history: %w", err)
	}

	return &application, nil
}

// RetryNotification re-sends the most recent failed message for an
// application and appends a fresh history record.
func (s *ApplicationService) RetryNotification(applicationID uuid.UUID) (*models.Application, error) {
	var application models.Application
	if err := s.db.First(&application, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("application not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	failed := application.NotificationHistory.LastFailed()
	if failed == nil {
		return nil, errors.New("no failed notification to retry")
	}

	s.recordNotification(&application, failed.Status)

	if err := s.db.Save(&application).Error; err != nil {
		return nil, fmt.Errorf("failed to record notification history: %w", err)
	}

	return &application, nil
}

// FinalizeAdoption closes out an approved application: the history entry
// becomes an adoption, the pet leaves the catalog.
func (s *ApplicationService) FinalizeAdoption(applicationID uuid.UUID) (*models.Application, error) {
	var application models.Application
	if err := s.db.First(&application, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("application not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if application.Status != models.ApplicationStatusApproved {
		return nil, errors.New("only approved applications can be finalized")
	}

	now := time.Now()
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Model(&models.AdoptionHistoryEntry{}).
			Where("application_id = ?", application.ID).
			Updates(map[string]interface{}{
				"status":        models.AdoptionStatusAdopted,
				"adoption_date": now,
			}).Error; err != nil {
			return fmt.Errorf("failed to finalize adoption history entry: %w", err)
		}

		if err := tx.Model(&models.Pet{}).
			Where("id = ?", application.PetID).
			Update("status", models.PetStatusAdopted).Error; err != nil {
			return fmt.Errorf("failed to mark pet adopted: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &application, nil
}

func (s *ApplicationService) GetApplication(applicationID, requesterID uuid.UUID, isAdmin bool) (*models.Application, error) {
	var application models.Application
	if err := s.db.Preload("Pet").First(&application, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("application not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !isAdmin && application.AdopterID != requesterID {
		return nil, errors.New("unauthorized to view this application")
	}

	return &application, nil
}

func (s *ApplicationService) SearchApplications(params ApplicationSearchParams) ([]models.Application, int64, error) {
	query := s.db.Model(&models.Application{}).Preload("Pet")

	if params.AdopterID != nil {
		query = query.Where("adopter_id = ?", *params.AdopterID)
	}
	if params.PetID != nil {
		query = query.Where("pet_id = ?", *params.PetID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Search != "" {
		query = query.Where("adopter_name ILIKE ? OR adopter_email ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	var applications []models.Application
	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at", "submitted_at", "status"})
	query = utils.ApplyPagination(query, params.PaginationParams)
	if err := query.Find(&applications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}

	return applications, total, nil
}

// recordNotification fires the gateway and appends the outcome, success or
// not, to the application's audit trail.
func (s *ApplicationService) recordNotification(application *models.Application, status models.ApplicationStatus) {
	var result DeliveryResult
	notificationType := models.NotificationTypeStatusUpdate

	if status == models.ApplicationStatusApproved {
		notificationType = models.NotificationTypeApproval
		result = s.notifier.SendApprovalNotification(application)
	} else {
		result = s.notifier.SendStatusUpdateNotification(application, status)
	}

	application.NotificationHistory = append(application.NotificationHistory, models.NotificationRecord{
		Timestamp: time.Now(),
		Type:      notificationType,
		Status:    status,
		MessageID: result.MessageID,
		Success:   result.Success,
		Error:     result.Error,
	})
}

// timelineCompletionFor maps a review decision onto how many milestones are
// done. A rejection freezes the timeline where it stood.
func timelineCompletionFor(status models.ApplicationStatus, timeline models.Timeline) int {
	switch status {
	case models.ApplicationStatusUnderReview:
		return 2
	case models.ApplicationStatusApproved:
		return len(timeline)
	default:
		return timeline.CompletedCount()
	}
}

func adoptionStatusFor(status models.ApplicationStatus) (models.AdoptionStatus, bool) {
	switch status {
	case models.ApplicationStatusApproved:
		return models.AdoptionStatusApproved, true
	case models.ApplicationStatusRejected:
		return models.AdoptionStatusRejected, true
	default:
		return "", false
	}
}

func formSnapshot(form *forms.ApplicationForm) models.JSONB {
	raw, err := json.Marshal(form)
	if err != nil {
		return nil
	}

	var snapshot models.JSONB
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil
	}
	return snapshot
}
