// internal/services/notification_service_test.go
package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petpal/petpal-backend/internal/config"
	"github.com/petpal/petpal-backend/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Frontend:    config.FrontendConfig{BaseURL: "http://localhost:3000"},
		// SMTP unset: delivery is logged, not sent
	}
}

func TestSendApprovalNotificationWithoutSMTP(t *testing.T) {
	db, _ := newMockDB(t)
	service := NewNotificationService(db, testConfig())

	application := &models.Application{
		AdopterName:  "Jane Doe",
		AdopterEmail: "jane@example.com",
		Pet:          &models.Pet{Name: "Buddy"},
	}

	result := service.SendApprovalNotification(application)

	assert.True(t, result.Success)
	assert.NotEmpty(t, result.MessageID)
	assert.Empty(t, result.Error)
}

func TestSendStatusUpdateNotificationWithoutSMTP(t *testing.T) {
	db, _ := newMockDB(t)
	service := NewNotificationService(db, testConfig())

	application := &models.Application{
		AdopterName:  "Jane Doe",
		AdopterEmail: "jane@example.com",
		Pet:          &models.Pet{Name: "Buddy"},
	}

	result := service.SendStatusUpdateNotification(application, models.ApplicationStatusUnderReview)

	assert.True(t, result.Success)
	assert.NotEmpty(t, result.MessageID)
}

func TestNotifyNewApplicationWritesInboxRow(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewNotificationService(db, testConfig())

	mock.ExpectQuery(`INSERT INTO "admin_notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))

	application := &models.Application{
		AdopterName: "Jane Doe",
		Pet:         &models.Pet{Name: "Buddy"},
	}
	application.ID = uuid.New()

	require.NoError(t, service.NotifyNewApplication(application))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotifyLostPetReportWritesInboxRow(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewNotificationService(db, testConfig())

	mock.ExpectQuery(`INSERT INTO "admin_notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))

	report := &models.LostPetReport{
		PetName:      "Whiskers",
		Species:      "cat",
		LocationNote: "Oak Park",
	}
	report.ID = uuid.New()

	require.NoError(t, service.NotifyLostPetReport(report))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRenderTemplateSubstitutesFields(t *testing.T) {
	db, _ := newMockDB(t)
	service := NewNotificationService(db, testConfig())

	body, err := service.renderTemplate("Hello {{.Name}}", map[string]interface{}{"Name": "Jane"})

	require.NoError(t, err)
	assert.Equal(t, "Hello Jane", body)
}

func TestGetEmailTemplateFallsBackToDefault(t *testing.T) {
	db, _ := newMockDB(t)
	service := NewNotificationService(db, testConfig())

	tmpl := service.getEmailTemplate("no_such_template")
	assert.Equal(t, "Notification", tmpl.Subject)

	approved := service.getEmailTemplate("application_approved")
	assert.Contains(t, approved.Body, "{{.PetName}}")
}
