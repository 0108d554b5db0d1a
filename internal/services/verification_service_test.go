// internal/services/verification_service_test.go
package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petpal/petpal-backend/internal/models"
)

func cleanVerification() *models.AdopterVerification {
	return &models.AdopterVerification{
		BackgroundCheck: models.BackgroundCheck{
			EmploymentVerified: true,
			CreditScore:        720,
		},
		HomeInspection: models.HomeInspection{
			Completed: true,
			Score:     90,
		},
		FinancialCheck: models.FinancialCheck{
			AnnualIncome:  65000,
			PetBudget:     200,
			EmergencyFund: true,
			Score:         80,
		},
		PetHistory: models.PetHistory{
			ExperienceLevel: "experienced",
		},
		Lifestyle: models.Lifestyle{
			HoursAwayDaily: 6,
		},
	}
}

func TestScoreBackgroundCheck(t *testing.T) {
	assert.Equal(t, 100, scoreBackgroundCheck(models.BackgroundCheck{EmploymentVerified: true}))
	assert.Equal(t, 80, scoreBackgroundCheck(models.BackgroundCheck{}))
	assert.Equal(t, 50, scoreBackgroundCheck(models.BackgroundCheck{EmploymentVerified: true, CriminalHistory: true}))
	assert.Equal(t, 85, scoreBackgroundCheck(models.BackgroundCheck{EmploymentVerified: true, CreditScore: 550}))

	// Animal abuse history zeroes the check no matter what else is true
	assert.Equal(t, 0, scoreBackgroundCheck(models.BackgroundCheck{
		EmploymentVerified: true,
		CreditScore:        800,
		AnimalAbuseHistory: true,
	}))
}

func TestScorePetHistory(t *testing.T) {
	assert.Equal(t, 100, scorePetHistory(models.PetHistory{ExperienceLevel: "expert"}))
	assert.Equal(t, 85, scorePetHistory(models.PetHistory{ExperienceLevel: "experienced"}))
	assert.Equal(t, 70, scorePetHistory(models.PetHistory{ExperienceLevel: "intermediate"}))
	assert.Equal(t, 50, scorePetHistory(models.PetHistory{ExperienceLevel: "first-time"}))
	assert.Equal(t, 60, scorePetHistory(models.PetHistory{}))
}

func TestComputeOverallScore(t *testing.T) {
	v := cleanVerification()

	// 0.30*100 + 0.25*90 + 0.25*80 + 0.20*85 = 89.5, rounded
	assert.Equal(t, 90, ComputeOverallScore(v))

	v.BackgroundCheck.AnimalAbuseHistory = true
	// 0 + 22.5 + 20 + 17 = 59.5
	assert.Equal(t, 60, ComputeOverallScore(v))
}

func TestComputeOverallScoreClampsSubscores(t *testing.T) {
	v := cleanVerification()
	v.HomeInspection.Score = 400
	v.FinancialCheck.Score = -20

	// 30 + 25 + 0 + 17
	assert.Equal(t, 72, ComputeOverallScore(v))
}

func TestDeriveFlaggedConcerns(t *testing.T) {
	v := cleanVerification()
	assert.Empty(t, deriveFlaggedConcerns(v))

	v.BackgroundCheck.CriminalHistory = true
	v.FinancialCheck.EmergencyFund = false
	v.HomeInspection.SafetyHazards = []string{"exposed wiring", "unfenced pool"}
	v.Lifestyle.HoursAwayDaily = 12
	v.PetHistory = models.PetHistory{ExperienceLevel: "first-time", SpecialNeeds: true}

	concerns := deriveFlaggedConcerns(v)
	assert.Len(t, concerns, 5)
	assert.Contains(t, concerns, "Criminal history reported")
	assert.Contains(t, concerns, "Home inspection found 2 safety hazards")
	assert.Contains(t, concerns, "No emergency fund for veterinary costs")
	assert.Contains(t, concerns, "Away from home more than 10 hours a day")
	assert.Contains(t, concerns, "First-time owner requesting a special needs pet")
}

func verificationRow(verificationID uuid.UUID, status models.VerificationStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "adopter_name", "adopter_email", "status", "overall_score"}).
		AddRow(verificationID, "Jane Doe", "jane@example.com", string(status), 90)
}

func TestUpdateVerificationStatusTransition(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewVerificationService(db)

	verificationID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "adopter_verifications"`).
		WillReturnRows(verificationRow(verificationID, models.VerificationStatusRequiresReview))
	mock.ExpectExec(`UPDATE "adopter_verifications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	verification, err := service.UpdateVerificationStatus(verificationID, models.VerificationStatusApproved, "admin@petpal.app", "all checks passed")

	require.NoError(t, err)
	assert.Equal(t, models.VerificationStatusApproved, verification.Status)
	assert.Equal(t, "admin@petpal.app", verification.ReviewedBy)
	assert.Equal(t, "all checks passed", verification.AdminNotes)
	assert.NotNil(t, verification.ReviewDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateVerificationStatusRejectsBackwardTransition(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewVerificationService(db)

	verificationID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "adopter_verifications"`).
		WillReturnRows(verificationRow(verificationID, models.VerificationStatusApproved))

	_, err := service.UpdateVerificationStatus(verificationID, models.VerificationStatusPending, "admin@petpal.app", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot transition")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAssessmentsRecomputesDerivedFields(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewVerificationService(db)

	verificationID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "adopter_verifications"`).
		WillReturnRows(verificationRow(verificationID, models.VerificationStatusPending))
	mock.ExpectExec(`UPDATE "adopter_verifications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	background := &models.BackgroundCheck{CriminalHistory: true}
	verification, err := service.UpdateAssessments(verificationID, &UpdateAssessmentsRequest{
		BackgroundCheck: background,
	})

	require.NoError(t, err)
	// First assessment moves the case off pending
	assert.Equal(t, models.VerificationStatusInProgress, verification.Status)
	assert.Contains(t, []string(verification.FlaggedConcerns), "Criminal history reported")
	assert.Equal(t, ComputeOverallScore(verification), verification.OverallScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAssessmentsRefusesDecidedCase(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewVerificationService(db)

	verificationID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "adopter_verifications"`).
		WillReturnRows(verificationRow(verificationID, models.VerificationStatusRejected))

	_, err := service.UpdateAssessments(verificationID, &UpdateAssessmentsRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already been decided")
	assert.NoError(t, mock.ExpectationsWereMet())
}
