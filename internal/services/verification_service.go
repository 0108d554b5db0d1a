// internal/services/verification_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petpal/petpal-backend/internal/models"
	"github.com/petpal/petpal-backend/internal/utils"
)

type VerificationService struct {
	db *gorm.DB
}

type CreateVerificationRequest struct {
	AdopterID    *uuid.UUID `json:"adopter_id,omitempty"`
	AdopterName  string     `json:"adopter_name" validate:"required,min=2,max=200"`
	AdopterEmail string     `json:"adopter_email" validate:"required,email"`
	AdopterPhone string     `json:"adopter_phone,omitempty" validate:"omitempty,phone"`

	BackgroundCheck models.BackgroundCheck `json:"background_check"`
	HomeInspection  models.HomeInspection  `json:"home_inspection"`
	FinancialCheck  models.FinancialCheck  `json:"financial_check"`
	PetHistory      models.PetHistory      `json:"pet_history"`
	Lifestyle       models.Lifestyle       `json:"lifestyle"`
}

type UpdateAssessmentsRequest struct {
	BackgroundCheck *models.BackgroundCheck `json:"background_check,omitempty"`
	HomeInspection  *models.HomeInspection  `json:"home_inspection,omitempty"`
	FinancialCheck  *models.FinancialCheck  `json:"financial_check,omitempty"`
	PetHistory      *models.PetHistory      `json:"pet_history,omitempty"`
	Lifestyle       *models.Lifestyle       `json:"lifestyle,omitempty"`
}

type VerificationSearchParams struct {
	utils.PaginationParams
	Status   *models.VerificationStatus `json:"status,omitempty"`
	MinScore *int                       `json:"min_score,omitempty"`
}

func NewVerificationService(db *gorm.DB) *VerificationService {
	return &VerificationService{db: db}
}

// CreateVerification opens a verification case. The overall score and the
// flagged concerns are derived from the assessments, never stored by hand.
func (s *VerificationService) CreateVerification(req *CreateVerificationRequest) (*models.AdopterVerification, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	verification := &models.AdopterVerification{
		AdopterID:       req.AdopterID,
		AdopterName:     req.AdopterName,
		AdopterEmail:    req.AdopterEmail,
		AdopterPhone:    req.AdopterPhone,
		Status:          models.VerificationStatusPending,
		BackgroundCheck: req.BackgroundCheck,
		HomeInspection:  req.HomeInspection,
		FinancialCheck:  req.FinancialCheck,
		PetHistory:      req.PetHistory,
		Lifestyle:       req.Lifestyle,
		SubmissionDate:  time.Now(),
	}
	s.rescore(verification)

	if err := s.db.Create(verification).Error; err != nil {
		return nil, fmt.Errorf("failed to create verification: %w", err)
	}

	return verification, nil
}

func (s *VerificationService) GetVerification(verificationID uuid.UUID) (*models.AdopterVerification, error) {
	var verification models.AdopterVerification
	if err := s.db.First(&verification, verificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("verification not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &verification, nil
}

func (s *VerificationService) SearchVerifications(params VerificationSearchParams) ([]models.AdopterVerification, int64, error) {
	query := s.db.Model(&models.AdopterVerification{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.MinScore != nil {
		query = query.Where("overall_score >= ?", *params.MinScore)
	}
	if params.Search != "" {
		query = query.Where("adopter_name ILIKE ? OR adopter_email ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count verifications: %w", err)
	}

	var verifications []models.AdopterVerification
	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at", "submission_date", "overall_score", "status"})
	query = utils.ApplyPagination(query, params.PaginationParams)
	if err := query.Find(&verifications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list verifications: %w", err)
	}

	return verifications, total, nil
}

// UpdateAssessments replaces the supplied assessment sections and recomputes
// the derived score and concerns. A pending case moves to in-progress on its
// first assessment update.
func (s *VerificationService) UpdateAssessments(verificationID uuid.UUID, req *UpdateAssessmentsRequest) (*models.AdopterVerification, error) {
	verification, err := s.GetVerification(verificationID)
	if err != nil {
		return nil, err
	}

	if verification.Status == models.VerificationStatusApproved || verification.Status == models.VerificationStatusRejected {
		return nil, errors.New("verification has already been decided")
	}

	if req.BackgroundCheck != nil {
		verification.BackgroundCheck = *req.BackgroundCheck
	}
	if req.HomeInspection != nil {
		verification.HomeInspection = *req.HomeInspection
	}
	if req.FinancialCheck != nil {
		verification.FinancialCheck = *req.FinancialCheck
	}
	if req.PetHistory != nil {
		verification.PetHistory = *req.PetHistory
	}
	if req.Lifestyle != nil {
		verification.Lifestyle = *req.Lifestyle
	}

	s.rescore(verification)

	if verification.Status == models.VerificationStatusPending {
		verification.Status = models.VerificationStatusInProgress
	}

	if err := s.db.Save(verification).Error; err != nil {
		return nil, fmt.Errorf("failed to update verification: %w", err)
	}

	return verification, nil
}

// UpdateVerificationStatus applies a guarded transition and stamps the
// reviewer on terminal decisions.
func (s *VerificationService) UpdateVerificationStatus(verificationID uuid.UUID, newStatus models.VerificationStatus, reviewedBy, notes string) (*models.AdopterVerification, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("unknown verification status %q", newStatus)
	}

	verification, err := s.GetVerification(verificationID)
	if err != nil {
		return nil, err
	}

	if !verification.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("cannot transition verification from %s to %s", verification.Status, newStatus)
	}

	now := time.Now()
	verification.Status = newStatus
	verification.ReviewDate = &now
	verification.ReviewedBy = reviewedBy
	if notes != "" {
		verification.AdminNotes = notes
	}

	if err := s.db.Save(verification).Error; err != nil {
		return nil, fmt.Errorf("failed to update verification status: %w", err)
	}

	return verification, nil
}

func (s *VerificationService) rescore(verification *models.AdopterVerification) {
	verification.OverallScore = ComputeOverallScore(verification)
	verification.FlaggedConcerns = deriveFlaggedConcerns(verification)
}

// ComputeOverallScore aggregates the four scored assessments. Background
// history weighs heaviest; lifestyle informs the flagged concerns instead of
// the score.
func ComputeOverallScore(v *models.AdopterVerification) int {
	score := 0.30*float64(scoreBackgroundCheck(v.BackgroundCheck)) +
		0.25*float64(clampScore(v.HomeInspection.Score)) +
		0.25*float64(clampScore(v.FinancialCheck.Score)) +
		0.20*float64(scorePetHistory(v.PetHistory))
	return int(math.Round(score))
}

func scoreBackgroundCheck(b models.BackgroundCheck) int {
	if b.AnimalAbuseHistory {
		return 0
	}

	score := 100
	if b.CriminalHistory {
		score -= 50
	}
	if !b.EmploymentVerified {
		score -= 20
	}
	if b.CreditScore > 0 && b.CreditScore < 600 {
		score -= 15
	}
	return clampScore(score)
}

func scorePetHistory(p models.PetHistory) int {
	switch p.ExperienceLevel {
	case "expert":
		return 100
	case "experienced":
		return 85
	case "intermediate":
		return 70
	case "first-time":
		return 50
	default:
		return 60
	}
}

func deriveFlaggedConcerns(v *models.AdopterVerification) []string {
	var concerns []string

	if v.BackgroundCheck.AnimalAbuseHistory {
		concerns = append(concerns, "History of animal abuse on record")
	}
	if v.BackgroundCheck.CriminalHistory {
		concerns = append(concerns, "Criminal history reported")
	}
	if !v.BackgroundCheck.EmploymentVerified {
		concerns = append(concerns, "Employment could not be verified")
	}
	if len(v.HomeInspection.SafetyHazards) > 0 {
		concerns = append(concerns, fmt.Sprintf("Home inspection found %d safety hazards", len(v.HomeInspection.SafetyHazards)))
	}
	if !v.FinancialCheck.EmergencyFund {
		concerns = append(concerns, "No emergency fund for veterinary costs")
	}
	if v.Lifestyle.HoursAwayDaily > 10 {
		concerns = append(concerns, "Away from home more than 10 hours a day")
	}
	if v.PetHistory.SpecialNeeds && v.PetHistory.ExperienceLevel == "first-time" {
		concerns = append(concerns, "First-time owner requesting a special needs pet")
	}

	return concerns
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
