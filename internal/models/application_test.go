// internal/models/application_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTimeline(t *testing.T) {
	submitted := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	timeline := NewTimeline(submitted)

	assert.Len(t, timeline, 5)
	assert.True(t, timeline[0].Completed)
	assert.Equal(t, "2026-03-10", timeline[0].Date)
	for _, step := range timeline[1:] {
		assert.False(t, step.Completed)
		assert.Empty(t, step.Date)
	}

	assert.Equal(t, 1, timeline.CompletedCount())
	assert.Equal(t, 20, timeline.Progress())
	assert.Equal(t, "Application Review", timeline.CurrentStep())
}

func TestTimelineCompleteThrough(t *testing.T) {
	submitted := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	reviewed := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	timeline := NewTimeline(submitted).CompleteThrough(2, reviewed)

	assert.Equal(t, 2, timeline.CompletedCount())
	assert.Equal(t, 40, timeline.Progress())
	assert.Equal(t, "Meet & Greet", timeline.CurrentStep())
	// The original completion date is preserved, not overwritten
	assert.Equal(t, "2026-03-10", timeline[0].Date)
	assert.Equal(t, "2026-03-14", timeline[1].Date)
}

func TestTimelineCompleteThroughAll(t *testing.T) {
	now := time.Now()
	timeline := NewTimeline(now).CompleteThrough(5, now)

	assert.Equal(t, 100, timeline.Progress())
	assert.Equal(t, "Final Approval", timeline.CurrentStep())
}

func TestTimelineCompletedCountStopsAtFirstGap(t *testing.T) {
	timeline := Timeline{
		{Label: "a", Completed: true},
		{Label: "b", Completed: false},
		{Label: "c", Completed: true},
	}

	assert.Equal(t, 1, timeline.CompletedCount())
}

func TestApplicationStatusTransitions(t *testing.T) {
	assert.True(t, ApplicationStatusPending.CanTransitionTo(ApplicationStatusUnderReview))
	assert.True(t, ApplicationStatusPending.CanTransitionTo(ApplicationStatusApproved))
	assert.True(t, ApplicationStatusUnderReview.CanTransitionTo(ApplicationStatusRejected))

	// Terminal states admit nothing
	assert.False(t, ApplicationStatusApproved.CanTransitionTo(ApplicationStatusRejected))
	assert.False(t, ApplicationStatusRejected.CanTransitionTo(ApplicationStatusPending))
	assert.False(t, ApplicationStatusUnderReview.CanTransitionTo(ApplicationStatusPending))

	assert.True(t, ApplicationStatusApproved.IsTerminal())
	assert.False(t, ApplicationStatusPending.IsTerminal())
	assert.False(t, ApplicationStatus("bogus").IsValid())
}

func TestVerificationStatusTransitions(t *testing.T) {
	assert.True(t, VerificationStatusPending.CanTransitionTo(VerificationStatusInProgress))
	assert.True(t, VerificationStatusInProgress.CanTransitionTo(VerificationStatusRequiresReview))
	assert.True(t, VerificationStatusRequiresReview.CanTransitionTo(VerificationStatusApproved))

	assert.False(t, VerificationStatusRequiresReview.CanTransitionTo(VerificationStatusInProgress))
	assert.False(t, VerificationStatusApproved.CanTransitionTo(VerificationStatusRejected))

	assert.True(t, VerificationStatusRejected.IsTerminal())
}

func TestNotificationHistoryLastFailed(t *testing.T) {
	history := NotificationHistory{
		{Success: false, Error: "smtp timeout", Status: ApplicationStatusApproved},
		{Success: true, MessageID: "msg-1"},
	}

	// The latest record succeeded but an earlier failure is still the most
	// recent failed one.
	failed := history.LastFailed()
	assert.NotNil(t, failed)
	assert.Equal(t, "smtp timeout", failed.Error)

	assert.Nil(t, NotificationHistory{}.LastFailed())
	assert.Nil(t, NotificationHistory{{Success: true}}.LastFailed())
}

func TestApplicationDaysAgo(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	app := &Application{SubmittedAt: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)}
	assert.Equal(t, 5, app.DaysAgo(now))

	// Clock skew never yields negative ages
	future := &Application{SubmittedAt: now.Add(48 * time.Hour)}
	assert.Equal(t, 0, future.DaysAgo(now))

	assert.Equal(t, 0, (&Application{}).DaysAgo(now))
}
