// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// User Management
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"
	KeyUserSuspended      = "user.suspended"

	// Pets
	KeyPetCreated  = "pet.created"
	KeyPetUpdated  = "pet.updated"
	KeyPetDeleted  = "pet.deleted"
	KeyPetNotFound = "pet.not_found"

	// Applications
	KeyApplicationSubmitted     = "application.submitted"
	KeyApplicationNotFound      = "application.not_found"
	KeyApplicationStatusUpdated = "application.status_updated"
	KeyApplicationDuplicate     = "application.duplicate"
	KeyApplicationFinalized     = "application.finalized"

	// Adoption history
	KeyAdoptionNotFound = "adoption.not_found"
	KeyAdoptionUpdated  = "adoption.updated"

	// Verifications
	KeyVerificationCreated       = "verification.created"
	KeyVerificationNotFound      = "verification.not_found"
	KeyVerificationStatusUpdated = "verification.status_updated"

	// Lost pets
	KeyLostPetReported = "lost_pet.reported"
	KeyLostPetNotFound = "lost_pet.not_found"
	KeyLostPetUpdated  = "lost_pet.updated"

	// Reminders and care journal
	KeyReminderCreated   = "reminder.created"
	KeyReminderNotFound  = "reminder.not_found"
	KeyReminderCompleted = "reminder.completed"
	KeyCareEntryCreated  = "care_entry.created"
	KeyCareEntryNotFound = "care_entry.not_found"

	// Admin
	KeyAdminActionSuccess = "admin.action_success"
	KeyAdminAccessDenied  = "admin.access_denied"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// Notifications
	KeyNotificationSent    = "notification.sent"
	KeyNotificationFailed  = "notification.failed"
	KeyNotificationRetried = "notification.retried"
)
