// internal/models/verification.go
package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type BackgroundCheck struct {
	CriminalHistory    bool   `json:"criminal_history"`
	AnimalAbuseHistory bool   `json:"animal_abuse_history"`
	EmploymentVerified bool   `json:"employment_verified"`
	CreditScore        int    `json:"credit_score,omitempty"`
	Notes              string `json:"notes,omitempty"`
}

func (b BackgroundCheck) Value() (driver.Value, error) { return jsonbValue(b) }
func (b *BackgroundCheck) Scan(value interface{}) error { return jsonbScan(b, value) }

type HomeInspection struct {
	Completed     bool     `json:"completed"`
	LivingSpace   string   `json:"living_space"`
	YardSize      string   `json:"yard_size,omitempty"`
	Fencing       string   `json:"fencing"`
	PetProofing   string   `json:"pet_proofing"`
	Score         int      `json:"score"`
	SafetyHazards []string `json:"safety_hazards"`
}

func (h HomeInspection) Value() (driver.Value, error) { return jsonbValue(h) }
func (h *HomeInspection) Scan(value interface{}) error { return jsonbScan(h, value) }

type FinancialCheck struct {
	AnnualIncome  float64 `json:"annual_income"`
	PetBudget     float64 `json:"pet_budget"`
	EmergencyFund bool    `json:"emergency_fund"`
	PetInsurance  bool    `json:"pet_insurance"`
	Score         int     `json:"score"`
}

func (f FinancialCheck) Value() (driver.Value, error) { return jsonbValue(f) }
func (f *FinancialCheck) Scan(value interface{}) error { return jsonbScan(f, value) }

type PetHistory struct {
	ExperienceLevel string `json:"experience_level"`
	CurrentPets     string `json:"current_pets"`
	PreviousPets    string `json:"previous_pets"`
	SpecialNeeds    bool   `json:"special_needs"`
}

func (p PetHistory) Value() (driver.Value, error) { return jsonbValue(p) }
func (p *PetHistory) Scan(value interface{}) error { return jsonbScan(p, value) }

type Lifestyle struct {
	WorkSchedule   string `json:"work_schedule"`
	HoursAwayDaily int    `json:"hours_away_daily"`
	ActivityLevel  string `json:"activity_level"`
	FamilyMembers  int    `json:"family_members"`
}

func (l Lifestyle) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *Lifestyle) Scan(value interface{}) error { return jsonbScan(l, value) }

// AdopterVerification is the shelter-side assessment of a prospective
// adopter, independent of any specific pet application.
type AdopterVerification struct {
	BaseModel
	AdopterID    *uuid.UUID `json:"adopter_id" gorm:"type:uuid;index"`
	AdopterName  string     `json:"adopter_name" gorm:"size:200;not null"`
	AdopterEmail string     `json:"adopter_email" gorm:"size:255;not null;index"`
	AdopterPhone string     `json:"adopter_phone" gorm:"size:30"`

	OverallScore int                `json:"overall_score"`
	Status       VerificationStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	BackgroundCheck BackgroundCheck `json:"background_check" gorm:"type:jsonb"`
	HomeInspection  HomeInspection  `json:"home_inspection" gorm:"type:jsonb"`
	FinancialCheck  FinancialCheck  `json:"financial_check" gorm:"type:jsonb"`
	PetHistory      PetHistory      `json:"pet_history" gorm:"type:jsonb"`
	Lifestyle       Lifestyle       `json:"lifestyle" gorm:"type:jsonb"`

	FlaggedConcerns pq.StringArray `json:"flagged_concerns" gorm:"type:text[]"`

	SubmissionDate time.Time  `json:"submission_date"`
	ReviewDate     *time.Time `json:"review_date,omitempty"`
	ReviewedBy     string     `json:"reviewed_by,omitempty" gorm:"size:200"`
	AdminNotes     string     `json:"admin_notes,omitempty" gorm:"type:text"`
}
