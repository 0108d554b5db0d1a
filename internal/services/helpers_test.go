// internal/services/helpers_test.go
package services

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/petpal/petpal-backend/internal/models"
)

// newMockDB opens a gorm connection over sqlmock. Default transactions are
// skipped so expectations line up one-to-one with service calls.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// fakeNotifier records gateway calls and answers with a canned result. Safe
// for the async shelter-inbox call.
type fakeNotifier struct {
	mu sync.Mutex

	result DeliveryResult

	approvals       []*models.Application
	statusUpdates   []models.ApplicationStatus
	newApplications int
}

func (f *fakeNotifier) SendApprovalNotification(application *models.Application) DeliveryResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.approvals = append(f.approvals, application)
	return f.result
}

func (f *fakeNotifier) SendStatusUpdateNotification(application *models.Application, status models.ApplicationStatus) DeliveryResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusUpdates = append(f.statusUpdates, status)
	return f.result
}

func (f *fakeNotifier) NotifyNewApplication(application *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.newApplications++
	return nil
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func timelineAt(t *testing.T, submitted time.Time, completed int) []byte {
	t.Helper()
	return mustJSON(t, models.NewTimeline(submitted).CompleteThrough(completed, submitted))
}
