// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/petpal/petpal-backend/internal/config"
	"github.com/petpal/petpal-backend/internal/models"
)

// DeliveryResult is the outcome of one outbound message. It is recorded on
// the application's notification history whether or not delivery succeeded.
type DeliveryResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NotificationSender is the gateway the review workflow talks to. Delivery is
// best effort: the status transition never waits on, or is blocked by, the
// outcome.
type NotificationSender interface {
	SendApprovalNotification(application *models.Application) DeliveryResult
	SendStatusUpdateNotification(application *models.Application, status models.ApplicationStatus) DeliveryResult
	NotifyNewApplication(application *models.Application) error
}

type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

// Application notifications
func (s *NotificationService) SendApprovalNotification(application *models.Application) DeliveryResult {
	data := map[string]interface{}{
		"AdopterName":    application.AdopterName,
		"PetName":        s.petName(application),
		"ApplicationURL": fmt.Sprintf("%s/applications/%s", s.config.Frontend.BaseURL, application.ID),
	}

	subject := "Adoption Application Approved"
	return s.deliver(application.AdopterEmail, subject, "application_approved", data)
}

func (s *NotificationService) SendStatusUpdateNotification(application *models.Application, status models.ApplicationStatus) DeliveryResult {
	data := map[string]interface{}{
		"AdopterName":    application.AdopterName,
		"PetName":        s.petName(application),
		"NewStatus":      string(status),
		"ApplicationURL": fmt.Sprintf("%s/applications/%s", s.config.Frontend.BaseURL, application.ID),
	}

	subject := "Adoption Application Update - " + string(status)
	return s.deliver(application.AdopterEmail, subject, "application_status_update", data)
}

// NotifyNewApplication drops a row into the shelter-side inbox when an
// adopter submits.
func (s *NotificationService) NotifyNewApplication(application *models.Application) error {
	notification := &models.AdminNotification{
		Type:                "adoption_application",
		Title:               "New Adoption Application",
		Message:             fmt.Sprintf("%s applied to adopt %s", application.AdopterName, s.petName(application)),
		Priority:            "medium",
		RelatedResourceType: "application",
		RelatedResourceID:   &application.ID,
	}

	if err := s.db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// NotifyLostPetReport alerts the shelter inbox about a new lost-pet report.
func (s *NotificationService) NotifyLostPetReport(report *models.LostPetReport) error {
	notification := &models.AdminNotification{
		Type:                "lost_pet_report",
		Title:               "New Lost Pet Report",
		Message:             fmt.Sprintf("%s (%s) reported missing near %s", report.PetName, report.Species, report.LocationNote),
		Priority:            "high",
		RelatedResourceType: "lost_pet",
		RelatedResourceID:   &report.ID,
	}

	if err := s.db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// SendWelcomeEmail greets a newly registered adopter.
func (s *NotificationService) SendWelcomeEmail(user *models.User) error {
	data := map[string]interface{}{
		"FirstName":    user.FirstName,
		"PlatformName": "PetPal",
		"BrowseURL":    fmt.Sprintf("%s/pets", s.config.Frontend.BaseURL),
	}

	result := s.deliver(user.Email, "Welcome to PetPal", "welcome", data)
	if !result.Success {
		return fmt.Errorf("failed to send welcome email: %s", result.Error)
	}
	return nil
}

// Helper methods
func (s *NotificationService) deliver(to, subject, templateType string, data map[string]interface{}) DeliveryResult {
	tmpl := s.getEmailTemplate(templateType)

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return DeliveryResult{Success: false, Error: fmt.Sprintf("failed to render email template: %v", err)}
	}

	if err := s.sendEmail(to, subject, body); err != nil {
		return DeliveryResult{Success: false, Error: err.Error()}
	}

	return DeliveryResult{Success: true, MessageID: uuid.New().String()}
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Email delivery skipped (SMTP not configured)")
		return nil
	}

	// Setup authentication
	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	// Compose message
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))

	// Send email
	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) petName(application *models.Application) string {
	if application.Pet != nil {
		return application.Pet.Name
	}

	var pet models.Pet
	if err := s.db.First(&pet, application.PetID).Error; err == nil {
		return pet.Name
	}
	return "your chosen pet"
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"welcome": {
			Subject: "Welcome to PetPal",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Welcome {{.FirstName}}!</h2>
	<p>Thank you for joining {{.PlatformName}}. Thousands of pets are waiting for a home.</p>
	<a href="{{.BrowseURL}}">Browse adoptable pets</a>
	<p>Best regards,<br>The {{.PlatformName}} Team</p>
</body>
</html>`,
		},
		"application_approved": {
			Subject: "Adoption Application Approved",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Great news, {{.AdopterName}}!</h2>
	<p>Your application to adopt {{.PetName}} has been approved.</p>
	<p>The shelter will reach out shortly to schedule the next steps.</p>
	<a href="{{.ApplicationURL}}">View your application</a>
	<p>Best regards,<br>The PetPal Team</p>
</body>
</html>`,
		},
		"application_status_update": {
			Subject: "Adoption Application Update",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.AdopterName}},</h2>
	<p>The status of your application for {{.PetName}} is now: <strong>{{.NewStatus}}</strong>.</p>
	<a href="{{.ApplicationURL}}">View your application</a>
	<p>Best regards,<br>The PetPal Team</p>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	// Default template
	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
