// internal/services/pet_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petpal/petpal-backend/internal/models"
)

func newTestCache(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return client, server
}

func petRow(petID uuid.UUID, name string, status models.PetStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "species", "breed", "status", "shelter_name"}).
		AddRow(petID, name, "dog", "Labrador", string(status), "Springfield Shelter")
}

func TestGetPetPopulatesCache(t *testing.T) {
	db, mock := newMockDB(t)
	cache, server := newTestCache(t)
	service := NewPetService(db, cache, time.Minute)

	petID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "pets"`).WillReturnRows(petRow(petID, "Buddy", models.PetStatusAvailable))

	pet, err := service.GetPet(context.Background(), petID)

	require.NoError(t, err)
	assert.Equal(t, "Buddy", pet.Name)
	assert.True(t, server.Exists(petCacheKeyPrefix+petID.String()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPetServesCacheHitWithoutDatabase(t *testing.T) {
	db, mock := newMockDB(t)
	cache, _ := newTestCache(t)
	service := NewPetService(db, cache, time.Minute)

	petID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "pets"`).WillReturnRows(petRow(petID, "Buddy", models.PetStatusAvailable))

	_, err := service.GetPet(context.Background(), petID)
	require.NoError(t, err)

	// Second read must come from Redis: no further query is expected
	pet, err := service.GetPet(context.Background(), petID)
	require.NoError(t, err)
	assert.Equal(t, "Buddy", pet.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPetCorruptCacheFallsBackToDatabase(t *testing.T) {
	db, mock := newMockDB(t)
	cache, server := newTestCache(t)
	service := NewPetService(db, cache, time.Minute)

	petID := uuid.New()
	require.NoError(t, server.Set(petCacheKeyPrefix+petID.String(), "{not json"))

	mock.ExpectQuery(`SELECT .* FROM "pets"`).WillReturnRows(petRow(petID, "Buddy", models.PetStatusAvailable))

	pet, err := service.GetPet(context.Background(), petID)

	require.NoError(t, err)
	assert.Equal(t, "Buddy", pet.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPetWorksWithoutCache(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewPetService(db, nil, time.Minute)

	petID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "pets"`).WillReturnRows(petRow(petID, "Buddy", models.PetStatusAvailable))

	pet, err := service.GetPet(context.Background(), petID)

	require.NoError(t, err)
	assert.Equal(t, "Buddy", pet.Name)
}

func TestUpdatePetStatusInvalidatesCache(t *testing.T) {
	db, mock := newMockDB(t)
	cache, server := newTestCache(t)
	service := NewPetService(db, cache, time.Minute)

	petID := uuid.New()
	require.NoError(t, server.Set(petCacheKeyPrefix+petID.String(), `{"name":"stale"}`))

	mock.ExpectQuery(`SELECT .* FROM "pets"`).WillReturnRows(petRow(petID, "Buddy", models.PetStatusAvailable))
	mock.ExpectExec(`UPDATE "pets"`).WillReturnResult(sqlmock.NewResult(0, 1))

	pet, err := service.UpdatePetStatus(context.Background(), petID, models.PetStatusAdopted)

	require.NoError(t, err)
	assert.Equal(t, models.PetStatusAdopted, pet.Status)
	assert.False(t, server.Exists(petCacheKeyPrefix+petID.String()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePetStatusRejectsUnknownStatus(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewPetService(db, nil, time.Minute)

	_, err := service.UpdatePetStatus(context.Background(), uuid.New(), models.PetStatus("lost"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown pet status")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePetValidation(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewPetService(db, nil, time.Minute)

	_, err := service.CreatePet(&CreatePetRequest{Name: "Buddy"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
