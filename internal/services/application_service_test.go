// internal/services/application_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petpal/petpal-backend/internal/forms"
	"github.com/petpal/petpal-backend/internal/models"
)

func validForm() *forms.ApplicationForm {
	return &forms.ApplicationForm{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		Phone:       "555-0100",
		DateOfBirth: "1990-04-12",

		Address: "12 Maple Street",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62704",

		HousingType: "house",
		OwnRent:     "own",

		PreviousPets: "Two dogs growing up",
		HoursAlone:   "4",

		Reference1Name:         "Sam Lee",
		Reference1Phone:        "555-0101",
		Reference1Relationship: "friend",

		WhyAdopt:  "Ready to give a rescue a home",
		Agreement: true,
	}
}

func TestSubmitApplicationInvalidFormTouchesNoDatabase(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewApplicationService(db, &fakeNotifier{})

	form := validForm()
	form.Agreement = false

	application, err := service.SubmitApplication(uuid.New(), uuid.New(), form)

	require.Error(t, err)
	assert.Nil(t, application)

	var formErr *FormValidationError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, forms.StepFinal, formErr.Step)
	assert.Contains(t, formErr.Fields, "agreement")

	// No expectations were set: any query would have failed the test
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitApplicationReportsEarliestInvalidStep(t *testing.T) {
	db, _ := newMockDB(t)
	service := NewApplicationService(db, &fakeNotifier{})

	form := validForm()
	form.City = ""
	form.Agreement = false

	_, err := service.SubmitApplication(uuid.New(), uuid.New(), form)

	var formErr *FormValidationError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, forms.StepAddress, formErr.Step)
}

func TestSubmitApplicationCreatesApplicationAndHistory(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	service := NewApplicationService(db, notifier)

	adopterID := uuid.New()
	petID := uuid.New()
	applicationID := uuid.New()
	historyID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "pets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "breed", "status", "shelter_name", "shelter_contact"}).
			AddRow(petID, "Buddy", "Labrador", "available", "Springfield Shelter", "contact@shelter.org"))

	// No open application for this pet and adopter
	mock.ExpectQuery(`SELECT .* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(applicationID))
	mock.ExpectQuery(`INSERT INTO "adoption_history_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(historyID))
	mock.ExpectCommit()

	application, err := service.SubmitApplication(adopterID, petID, validForm())

	require.NoError(t, err)
	require.NotNil(t, application)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)
	assert.Equal(t, "Jane Doe", application.AdopterName)
	assert.Equal(t, 20, application.Progress)
	assert.Equal(t, "Application Review", application.CurrentStep)
	assert.Equal(t, 1, application.Timeline.CompletedCount())
	assert.Empty(t, application.NotificationHistory)
	assert.Equal(t, "Ready to give a rescue a home", application.FormData["whyAdopt"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitApplicationRejectsDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewApplicationService(db, &fakeNotifier{})

	adopterID := uuid.New()
	petID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "pets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}).
			AddRow(petID, "Buddy", "available"))

	// An open application already exists
	mock.ExpectQuery(`SELECT .* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(uuid.New(), "Pending"))

	application, err := service.SubmitApplication(adopterID, petID, validForm())

	assert.Nil(t, application)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already have an open application")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitApplicationRejectsUnavailablePet(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewApplicationService(db, &fakeNotifier{})

	petID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "pets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}).
			AddRow(petID, "Buddy", "adopted"))

	_, err := service.SubmitApplication(uuid.New(), petID, validForm())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestSubmitApplicationPetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewApplicationService(db, &fakeNotifier{})

	mock.ExpectQuery(`SELECT .* FROM "pets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := service.SubmitApplication(uuid.New(), uuid.New(), validForm())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pet not found")
}

func applicationRow(t *testing.T, applicationID uuid.UUID, status models.ApplicationStatus, completed int) *sqlmock.Rows {
	t.Helper()
	submitted := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "pet_id", "adopter_id", "adopter_name", "adopter_email",
		"status", "submitted_at", "timeline", "notification_history",
	}).AddRow(
		applicationID, uuid.New(), uuid.New(), "Jane Doe", "jane@example.com",
		string(status), submitted, timelineAt(t, submitted, completed), []byte(`[]`),
	)
}

func TestUpdateApplicationStatusApproval(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{result: DeliveryResult{Success: true, MessageID: "msg-42"}}
	service := NewApplicationService(db, notifier)

	applicationID := uuid.New()
	reviewerID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "applications"`).
		WillReturnRows(applicationRow(t, applicationID, models.ApplicationStatusUnderReview, 2))

	// Status write lands before any notification is attempted
	mock.ExpectExec(`UPDATE "applications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "adoption_history_entries"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "applications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	application, err := service.UpdateApplicationStatus(applicationID, models.ApplicationStatusApproved, reviewerID, "great fit")

	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, application.Status)
	assert.Equal(t, 100, application.Progress)
	assert.Equal(t, "Final Approval", application.CurrentStep)
	assert.Equal(t, "great fit", application.Notes)
	require.NotNil(t, application.ReviewedBy)
	assert.Equal(t, reviewerID, *application.ReviewedBy)

	require.Len(t, application.NotificationHistory, 1)
	record := application.NotificationHistory[0]
	assert.True(t, record.Success)
	assert.Equal(t, "msg-42", record.MessageID)
	assert.Equal(t, models.NotificationTypeApproval, record.Type)
	assert.Equal(t, models.ApplicationStatusApproved, record.Status)

	assert.Len(t, notifier.approvals, 1)
	assert.Empty(t, notifier.statusUpdates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplicationStatusRecordsFailedDelivery(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{result: DeliveryResult{Success: false, Error: "smtp timeout"}}
	service := NewApplicationService(db, notifier)

	applicationID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "applications"`).
		WillReturnRows(applicationRow(t, applicationID, models.ApplicationStatusPending, 1))

	mock.ExpectExec(`UPDATE "applications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "applications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	application, err := service.UpdateApplicationStatus(applicationID, models.ApplicationStatusUnderReview, uuid.New(), "")

	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusUnderReview, application.Status)
	assert.Equal(t, 40, application.Progress)

	// The transition survives a failed notification; the failure is recorded
	require.Len(t, application.NotificationHistory, 1)
	assert.False(t, application.NotificationHistory[0].Success)
	assert.Equal(t, "smtp timeout", application.NotificationHistory[0].Error)
	assert.Equal(t, models.NotificationTypeStatusUpdate, application.NotificationHistory[0].Type)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplicationStatusRejectsInvalidTransition(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewApplicationService(db, &fakeNotifier{})

	applicationID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "applications"`).
		WillReturnRows(applicationRow(t, applicationID, models.ApplicationStatusApproved, 5))

	_, err := service.UpdateApplicationStatus(applicationID, models.ApplicationStatusRejected, uuid.New(), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot transition")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplicationStatusUnknownStatus(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewApplicationService(db, &fakeNotifier{})

	_, err := service.UpdateApplicationStatus(uuid.New(), models.ApplicationStatus("Sideways"), uuid.New(), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown application status")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRetryNotificationResendsLastFailure(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{result: DeliveryResult{Success: true, MessageID: "msg-99"}}
	service := NewApplicationService(db, notifier)

	applicationID := uuid.New()
	submitted := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	history := mustJSON(t, models.NotificationHistory{
		{Type: models.NotificationTypeApproval, Status: models.ApplicationStatusApproved, Success: false, Error: "smtp timeout"},
	})

	mock.ExpectQuery(`SELECT .* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "submitted_at", "timeline", "notification_history"}).
			AddRow(applicationID, "Approved", submitted, timelineAt(t, submitted, 5), history))

	mock.ExpectExec(`UPDATE "applications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	application, err := service.RetryNotification(applicationID)

	require.NoError(t, err)
	require.Len(t, application.NotificationHistory, 2)
	latest := application.NotificationHistory[1]
	assert.True(t, latest.Success)
	assert.Equal(t, "msg-99", latest.MessageID)
	assert.Equal(t, models.NotificationTypeApproval, latest.Type)

	assert.Len(t, notifier.approvals, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRetryNotificationWithoutFailure(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewApplicationService(db, &fakeNotifier{})

	applicationID := uuid.New()
	submitted := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	history := mustJSON(t, models.NotificationHistory{
		{Type: models.NotificationTypeApproval, Success: true, MessageID: "msg-1"},
	})

	mock.ExpectQuery(`SELECT .* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "submitted_at", "notification_history"}).
			AddRow(applicationID, "Approved", submitted, history))

	_, err := service.RetryNotification(applicationID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no failed notification")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalizeAdoption(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewApplicationService(db, &fakeNotifier{})

	applicationID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "applications"`).
		WillReturnRows(applicationRow(t, applicationID, models.ApplicationStatusApproved, 5))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "adoption_history_entries"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "pets"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	application, err := service.FinalizeAdoption(applicationID)

	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, application.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalizeAdoptionRequiresApproval(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewApplicationService(db, &fakeNotifier{})

	applicationID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "applications"`).
		WillReturnRows(applicationRow(t, applicationID, models.ApplicationStatusPending, 1))

	_, err := service.FinalizeAdoption(applicationID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "only approved applications")
	assert.NoError(t, mock.ExpectationsWereMet())
}
