// internal/services/lostpet_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/petpal/petpal-backend/internal/models"
	"github.com/petpal/petpal-backend/internal/utils"
)

type LostPetService struct {
	db       *gorm.DB
	notifier *NotificationService
}

type CreateLostPetReportRequest struct {
	PetName     string `json:"pet_name" validate:"required,min=1,max=100"`
	Species     string `json:"species" validate:"required,min=2,max=50"`
	Breed       string `json:"breed,omitempty" validate:"omitempty,max=100"`
	Description string `json:"description,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty" validate:"omitempty,url"`

	LastSeenAt   time.Time `json:"last_seen_at" validate:"required"`
	Latitude     float64   `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude    float64   `json:"longitude" validate:"gte=-180,lte=180"`
	LocationNote string    `json:"location_note,omitempty" validate:"omitempty,max=255"`

	ContactName  string `json:"contact_name" validate:"required,max=200"`
	ContactPhone string `json:"contact_phone" validate:"required,phone"`
}

type LostPetSearchParams struct {
	utils.PaginationParams
	Species string                `json:"species,omitempty"`
	Status  *models.LostPetStatus `json:"status,omitempty"`
}

func NewLostPetService(db *gorm.DB, notifier *NotificationService) *LostPetService {
	return &LostPetService{
		db:       db,
		notifier: notifier,
	}
}

// CreateReport files a lost-pet report under a fresh tracking code and alerts
// the shelter inbox.
func (s *LostPetService) CreateReport(reporterID uuid.UUID, req *CreateLostPetReportRequest) (*models.LostPetReport, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	trackingCode, err := utils.GenerateTrackingCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tracking code: %w", err)
	}

	report := &models.LostPetReport{
		ReporterID:   reporterID,
		TrackingCode: trackingCode,
		PetName:      req.PetName,
		Species:      req.Species,
		Breed:        req.Breed,
		Description:  req.Description,
		PhotoURL:     req.PhotoURL,
		Status:       models.LostPetStatusMissing,
		LastSeenAt:   req.LastSeenAt,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		LocationNote: req.LocationNote,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
	}

	if err := s.db.Create(report).Error; err != nil {
		return nil, fmt.Errorf("failed to create lost pet report: %w", err)
	}

	if s.notifier != nil {
		go func() {
			if err := s.notifier.NotifyLostPetReport(report); err != nil {
				logrus.WithError(err).Warn("Failed to create shelter notification for lost pet report")
			}
		}()
	}

	return report, nil
}

// GetReportByTrackingCode is the public lookup; no authentication required.
func (s *LostPetService) GetReportByTrackingCode(trackingCode string) (*models.LostPetReport, error) {
	var report models.LostPetReport
	if err := s.db.Where("tracking_code = ?", trackingCode).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("lost pet report not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &report, nil
}

func (s *LostPetService) SearchReports(params LostPetSearchParams) ([]models.LostPetReport, int64, error) {
	query := s.db.Model(&models.LostPetReport{})

	if params.Species != "" {
		query = query.Where("species = ?", params.Species)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Search != "" {
		query = query.Where("pet_name ILIKE ? OR breed ILIKE ? OR location_note ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count lost pet reports: %w", err)
	}

	var reports []models.LostPetReport
	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at", "last_seen_at", "status"})
	query = utils.ApplyPagination(query, params.PaginationParams)
	if err := query.Find(&reports).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list lost pet reports: %w", err)
	}

	return reports, total, nil
}

// UpdateReportStatus lets the reporter (or an admin) mark sightings and
// reunions. Reuniting stamps the resolution time.
func (s *LostPetService) UpdateReportStatus(reportID, requesterID uuid.UUID, isAdmin bool, status models.LostPetStatus) (*models.LostPetReport, error) {
	switch status {
	case models.LostPetStatusMissing, models.LostPetStatusSighted, models.LostPetStatusReunited:
	default:
		return nil, fmt.Errorf("unknown lost pet status %q", status)
	}

	var report models.LostPetReport
	if err := s.db.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("lost pet report not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !isAdmin && report.ReporterID != requesterID {
		return nil, errors.New("unauthorized to update this report")
	}

	if report.Status == models.LostPetStatusReunited {
		return nil, errors.New("report has already been resolved")
	}

	report.Status = status
	if status == models.LostPetStatusReunited {
		now := time.Now()
		report.ResolvedAt = &now
	}

	if err := s.db.Save(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to update lost pet report: %w", err)
	}

	return &report, nil
}
