// internal/models/application.go
package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// TimelineStep is one milestone on an application's fixed five-step timeline.
type TimelineStep struct {
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
	Date      string `json:"date,omitempty"`
}

type Timeline []TimelineStep

func (t Timeline) Value() (driver.Value, error) {
	return jsonbValue(t)
}

func (t *Timeline) Scan(value interface{}) error {
	return jsonbScan(t, value)
}

// Milestone labels, in order. Exactly one prefix of the timeline is completed.
var TimelineLabels = []string{
	"Application Submitted",
	"Application Review",
	"Meet & Greet",
	"Home Visit",
	"Final Approval",
}

// NewTimeline builds the submission-time template: the first milestone
// completed, the rest open.
func NewTimeline(submittedAt time.Time) Timeline {
	timeline := make(Timeline, 0, len(TimelineLabels))
	for i, label := range TimelineLabels {
		step := TimelineStep{Label: label}
		if i == 0 {
			step.Completed = true
			step.Date = submittedAt.Format("2006-01-02")
		}
		timeline = append(timeline, step)
	}
	return timeline
}

// CompleteThrough marks the first n milestones completed and clears the rest,
// preserving the monotonic-prefix invariant.
func (t Timeline) CompleteThrough(n int, at time.Time) Timeline {
	out := make(Timeline, len(t))
	copy(out, t)
	for i := range out {
		if i < n {
			out[i].Completed = true
			if out[i].Date == "" {
				out[i].Date = at.Format("2006-01-02")
			}
		} else {
			out[i].Completed = false
			out[i].Date = ""
		}
	}
	return out
}

func (t Timeline) CompletedCount() int {
	count := 0
	for _, step := range t {
		if !step.Completed {
			break
		}
		count++
	}
	return count
}

// Progress derives the percentage from timeline completion rather than
// storing an independent literal.
func (t Timeline) Progress() int {
	if len(t) == 0 {
		return 0
	}
	return t.CompletedCount() * 100 / len(t)
}

// CurrentStep is the first uncompleted milestone, or the last one when all
// are done.
func (t Timeline) CurrentStep() string {
	for _, step := range t {
		if !step.Completed {
			return step.Label
		}
	}
	if len(t) == 0 {
		return ""
	}
	return t[len(t)-1].Label
}

// NotificationRecord is one entry in an application's outbound-message audit
// trail, recorded regardless of delivery success.
type NotificationRecord struct {
	Timestamp time.Time         `json:"timestamp"`
	Type      NotificationType  `json:"type"`
	Status    ApplicationStatus `json:"status"`
	MessageID string            `json:"message_id,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
}

type NotificationHistory []NotificationRecord

func (h NotificationHistory) Value() (driver.Value, error) {
	return jsonbValue(h)
}

func (h *NotificationHistory) Scan(value interface{}) error {
	return jsonbScan(h, value)
}

// LastFailed returns the most recent undelivered record, if any.
func (h NotificationHistory) LastFailed() *NotificationRecord {
	for i := len(h) - 1; i >= 0; i-- {
		if !h[i].Success {
			return &h[i]
		}
	}
	return nil
}

type Application struct {
	BaseModel
	PetID        uuid.UUID         `json:"pet_id" gorm:"type:uuid;not null;index"`
	AdopterID    uuid.UUID         `json:"adopter_id" gorm:"type:uuid;not null;index"`
	AdopterName  string            `json:"adopter_name" gorm:"size:200;not null"`
	AdopterEmail string            `json:"adopter_email" gorm:"size:255;not null"`
	Status       ApplicationStatus `json:"status" gorm:"type:varchar(20);default:'Pending';index"`
	SubmittedAt  time.Time         `json:"submitted_date"`
	Notes        string            `json:"notes" gorm:"type:text"`

	Timeline            Timeline            `json:"timeline" gorm:"type:jsonb"`
	Progress            int                 `json:"progress"`
	CurrentStep         string              `json:"current_step" gorm:"size:50"`
	NotificationHistory NotificationHistory `json:"notification_history" gorm:"type:jsonb"`

	// Snapshot of the submitted form, kept for the admin review modal.
	FormData JSONB `json:"form_data" gorm:"type:jsonb"`

	ReviewedBy *uuid.UUID `json:"reviewed_by" gorm:"type:uuid"`
	ReviewedAt *time.Time `json:"reviewed_at"`

	// Relationships
	Pet     *Pet  `json:"pet,omitempty" gorm:"foreignKey:PetID"`
	Adopter *User `json:"adopter,omitempty" gorm:"foreignKey:AdopterID"`
}

// DaysAgo reports whole days since submission, as shown on application cards.
func (a *Application) DaysAgo(now time.Time) int {
	if a.SubmittedAt.IsZero() {
		return 0
	}
	days := int(now.Sub(a.SubmittedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
