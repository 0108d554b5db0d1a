// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return jsonbValue(j)
}

func (j *JSONB) Scan(value interface{}) error {
	return jsonbScan(j, value)
}

// jsonbValue / jsonbScan back every jsonb-mapped column type in this package.
func jsonbValue(v interface{}) (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func jsonbScan(dst interface{}, value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}

	return json.Unmarshal(bytes, dst)
}

// Enums
type UserType string

const (
	UserTypeAdopter      UserType = "adopter"
	UserTypeShelterAdmin UserType = "shelter_admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type PetStatus string

const (
	PetStatusAvailable PetStatus = "available"
	PetStatusPending   PetStatus = "pending"
	PetStatusAdopted   PetStatus = "adopted"
)

func (s PetStatus) IsValid() bool {
	switch s {
	case PetStatusAvailable, PetStatusPending, PetStatusAdopted:
		return true
	}
	return false
}

// ApplicationStatus values double as display labels, which is why they carry
// spaces. The transition table below is the only place transitions are defined.
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "Pending"
	ApplicationStatusUnderReview ApplicationStatus = "Under Review"
	ApplicationStatusApproved    ApplicationStatus = "Approved"
	ApplicationStatusRejected    ApplicationStatus = "Rejected"
)

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending:     {ApplicationStatusUnderReview, ApplicationStatusApproved, ApplicationStatusRejected},
	ApplicationStatusUnderReview: {ApplicationStatusApproved, ApplicationStatusRejected},
	ApplicationStatusApproved:    {},
	ApplicationStatusRejected:    {},
}

func (s ApplicationStatus) IsValid() bool {
	_, ok := applicationTransitions[s]
	return ok
}

func (s ApplicationStatus) IsTerminal() bool {
	return s.IsValid() && len(applicationTransitions[s]) == 0
}

func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type AdoptionStatus string

const (
	AdoptionStatusPending  AdoptionStatus = "pending"
	AdoptionStatusApproved AdoptionStatus = "approved"
	AdoptionStatusRejected AdoptionStatus = "rejected"
	AdoptionStatusAdopted  AdoptionStatus = "adopted"
)

type VerificationStatus string

const (
	VerificationStatusPending        VerificationStatus = "pending"
	VerificationStatusInProgress     VerificationStatus = "in-progress"
	VerificationStatusRequiresReview VerificationStatus = "requires-review"
	VerificationStatusApproved       VerificationStatus = "approved"
	VerificationStatusRejected       VerificationStatus = "rejected"
)

var verificationTransitions = map[VerificationStatus][]VerificationStatus{
	VerificationStatusPending:        {VerificationStatusInProgress, VerificationStatusRequiresReview, VerificationStatusApproved, VerificationStatusRejected},
	VerificationStatusInProgress:     {VerificationStatusRequiresReview, VerificationStatusApproved, VerificationStatusRejected},
	VerificationStatusRequiresReview: {VerificationStatusApproved, VerificationStatusRejected},
	VerificationStatusApproved:       {},
	VerificationStatusRejected:       {},
}

func (s VerificationStatus) IsValid() bool {
	_, ok := verificationTransitions[s]
	return ok
}

func (s VerificationStatus) IsTerminal() bool {
	return s.IsValid() && len(verificationTransitions[s]) == 0
}

func (s VerificationStatus) CanTransitionTo(next VerificationStatus) bool {
	for _, allowed := range verificationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type NotificationType string

const (
	NotificationTypeApproval     NotificationType = "approval"
	NotificationTypeStatusUpdate NotificationType = "status_update"
)

type LostPetStatus string

const (
	LostPetStatusMissing  LostPetStatus = "missing"
	LostPetStatusSighted  LostPetStatus = "sighted"
	LostPetStatusReunited LostPetStatus = "reunited"
)

type ReminderType string

const (
	ReminderTypeVaccination ReminderType = "vaccination"
	ReminderTypeMedication  ReminderType = "medication"
	ReminderTypeGrooming    ReminderType = "grooming"
	ReminderTypeVetVisit    ReminderType = "vet_visit"
	ReminderTypeOther       ReminderType = "other"
)

type CareEntryType string

const (
	CareEntryTypeFeeding  CareEntryType = "feeding"
	CareEntryTypeMedical  CareEntryType = "medical"
	CareEntryTypeGrooming CareEntryType = "grooming"
	CareEntryTypeActivity CareEntryType = "activity"
	CareEntryTypeNote     CareEntryType = "note"
)
