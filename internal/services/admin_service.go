// internal/services/admin_service.go
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

type AdminService struct {
	db *gorm.DB
}

// DashboardStats backs the admin landing page.
type DashboardStats struct {
	TotalPets            int64 `json:"total_pets"`
	AvailablePets        int64 `json:"available_pets"`
	TotalApplications    int64 `json:"total_applications"`
	PendingApplications  int64 `json:"pending_applications"`
	ApplicationsThisWeek int64 `json:"applications_this_week"`
	TotalAdoptions       int64 `json:"total_adoptions"`
	OpenVerifications    int64 `json:"open_verifications"`
	ActiveLostPetReports int64 `json:"active_lost_pet_reports"`
	UnreadNotifications  int64 `json:"unread_notifications"`
}

type UserSearchParams struct {
	utils.PaginationParams
	UserType *models.UserType   `json:"user_type,omitempty"`
	Status   *models.UserStatus `json:"status,omitempty"`
}

type NotificationListParams struct {
	utils.PaginationParams
	Status *string `json:"status,omitempty"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	weekAgo := time.Now().AddDate(0, 0, -7)

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalPets, s.db.Model(&models.Pet{})},
		{&stats.AvailablePets, s.db.Model(&models.Pet{}).Where("status = ?", models.PetStatusAvailable)},
		{&stats.TotalApplications, s.db.Model(&models.Application{})},
		{&stats.PendingApplications, s.db.Model(&models.Application{}).Where("status = ?", models.ApplicationStatusPending)},
		{&stats.ApplicationsThisWeek, s.db.Model(&models.Application{}).Where("submitted_at >= ?", weekAgo)},
		{&stats.TotalAdoptions, s.db.Model(&models.AdoptionHistoryEntry{}).Where("status = ?", models.AdoptionStatusAdopted)},
		{&stats.OpenVerifications, s.db.Model(&models.AdopterVerification{}).Where("status IN ?", []models.VerificationStatus{
			models.VerificationStatusPending, models.VerificationStatusInProgress, models.VerificationStatusRequiresReview})},
		{&stats.ActiveLostPetReports, s.db.Model(&models.LostPetReport{}).Where("status != ?", models.LostPetStatusReunited)},
		{&stats.UnreadNotifications, s.db.Model(&models.AdminNotification{}).Where("status = ?", "unread")},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
		}
	}

	return stats, nil
}

func (s *AdminService) SearchUsers(params UserSearchParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	if params.UserType != nil {
		query = query.Where("user_type = ?", *params.UserType)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Search != "" {
		query = query.Where("email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at", "email", "last_login_at"})
	query = utils.ApplyPagination(query, params.PaginationParams)
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

func (s *AdminService) UpdateUserStatus(userID uuid.UUID, status models.UserStatus) (*models.User, error) {
	if status != models.UserStatusActive && status != models.UserStatusSuspended {
		return nil, fmt.Errorf("unknown user status %q", status)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	user.Status = status
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	return &user, nil
}

func (s *AdminService) ListNotifications(params NotificationListParams) ([]models.AdminNotification, int64, error) {
	query := s.db.Model(&models.AdminNotification{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var notifications []models.AdminNotification
	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at", "priority"})
	query = utils.ApplyPagination(query, params.PaginationParams)
	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, total, nil
}

func (s *AdminService) MarkNotificationRead(notificationID uuid.UUID) (*models.AdminNotification, error) {
	var notification models.AdminNotification
	if err := s.db.First(&notification, notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("notification not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if notification.Status != "read" {
		now := time.Now()
		notification.Status = "read"
		notification.ReadAt = &now
		if err := s.db.Save(&notification).Error; err != nil {
			return nil, fmt.Errorf("failed to mark notification read: %w", err)
		}
	}

	return &notification, nil
}

// RecordAudit appends one audit trail row. Failures are returned to the
// middleware, which logs and moves on; audit writes never fail a request.
func (s *AdminService) RecordAudit(entry *models.AuditLog) error {
	if err := s.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record audit log: %w", err)
	}
	return nil
}

func (s *AdminService) ListAuditLogs(params utils.PaginationParams) ([]models.AuditLog, int64, error) {
	query := s.db.Model(&models.AuditLog{})

	if params.Search != "" {
		query = query.Where("action ILIKE ? OR resource_type ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	var logs []models.AuditLog
	query = utils.ApplySort(query, params, []string{"created_at", "action"})
	query = utils.ApplyPagination(query, params)
	if err := query.Preload("User").Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}

	return logs, total, nil
}
