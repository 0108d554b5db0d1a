// internal/services/pet_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/petpal/petpal-backend/internal/models"
	"github.com/petpal/petpal-backend/internal/utils"
)

const petCacheKeyPrefix = "petpal:pet:"

type PetService struct {
	db       *gorm.DB
	cache    *redis.Client
	cacheTTL time.Duration
}

type CreatePetRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Species     string   `json:"species" validate:"required,min=2,max=50"`
	Breed       string   `json:"breed,omitempty" validate:"omitempty,max=100"`
	AgeMonths   int      `json:"age_months" validate:"gte=0,lte=600"`
	Gender      string   `json:"gender,omitempty" validate:"omitempty,oneof=male female unknown"`
	Size        string   `json:"size,omitempty" validate:"omitempty,oneof=small medium large"`
	Color       string   `json:"color,omitempty" validate:"omitempty,max=50"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty" validate:"max=10,dive,url"`

	Vaccinated   bool   `json:"vaccinated"`
	Neutered     bool   `json:"neutered"`
	Microchipped bool   `json:"microchipped"`
	SpecialNeeds string `json:"special_needs,omitempty"`

	ShelterName    string  `json:"shelter_name" validate:"required,max=150"`
	ShelterContact string  `json:"shelter_contact" validate:"required,email"`
	ShelterPhone   string  `json:"shelter_phone,omitempty" validate:"omitempty,phone"`
	Latitude       float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude      float64 `json:"longitude" validate:"gte=-180,lte=180"`

	AdoptionFee float64 `json:"adoption_fee" validate:"gte=0"`
}

type UpdatePetRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Breed        *string  `json:"breed,omitempty" validate:"omitempty,max=100"`
	AgeMonths    *int     `json:"age_months,omitempty" validate:"omitempty,gte=0,lte=600"`
	Description  *string  `json:"description,omitempty"`
	Images       []string `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
	Vaccinated   *bool    `json:"vaccinated,omitempty"`
	Neutered     *bool    `json:"neutered,omitempty"`
	Microchipped *bool    `json:"microchipped,omitempty"`
	SpecialNeeds *string  `json:"special_needs,omitempty"`
	AdoptionFee  *float64 `json:"adoption_fee,omitempty" validate:"omitempty,gte=0"`
}

type PetSearchParams struct {
	utils.PaginationParams
	Species   string            `json:"species,omitempty"`
	Breed     string            `json:"breed,omitempty"`
	Size      string            `json:"size,omitempty"`
	Gender    string            `json:"gender,omitempty"`
	MaxAge    *int              `json:"max_age,omitempty"`
	MaxFee    *float64          `json:"max_fee,omitempty"`
	Status    *models.PetStatus `json:"status,omitempty"`
	Available bool              `json:"available,omitempty"`
}

func NewPetService(db *gorm.DB, cache *redis.Client, cacheTTL time.Duration) *PetService {
	return &PetService{
		db:       db,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (s *PetService) CreatePet(req *CreatePetRequest) (*models.Pet, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	pet := &models.Pet{
		Name:           req.Name,
		Species:        req.Species,
		Breed:          req.Breed,
		AgeMonths:      req.AgeMonths,
		Gender:         req.Gender,
		Size:           req.Size,
		Color:          req.Color,
		Description:    req.Description,
		Images:         req.Images,
		Status:         models.PetStatusAvailable,
		Vaccinated:     req.Vaccinated,
		Neutered:       req.Neutered,
		Microchipped:   req.Microchipped,
		SpecialNeeds:   req.SpecialNeeds,
		ShelterName:    req.ShelterName,
		ShelterContact: req.ShelterContact,
		ShelterPhone:   req.ShelterPhone,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		AdoptionFee:    req.AdoptionFee,
	}

	if err := s.db.Create(pet).Error; err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	return pet, nil
}

// GetPet serves the detail view through a read-through cache. Cache misses
// and cache failures both fall back to the database.
func (s *PetService) GetPet(ctx context.Context, petID uuid.UUID) (*models.Pet, error) {
	if cached := s.cacheGet(ctx, petID); cached != nil {
		return cached, nil
	}

	var pet models.Pet
	if err := s.db.First(&pet, petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("pet not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	s.cacheSet(ctx, &pet)
	return &pet, nil
}

func (s *PetService) SearchPets(params PetSearchParams) ([]models.Pet, int64, error) {
	query := s.db.Model(&models.Pet{})

	if params.Species != "" {
		query = query.Where("species = ?", params.Species)
	}
	if params.Breed != "" {
		query = query.Where("breed ILIKE ?", "%"+params.Breed+"%")
	}
	if params.Size != "" {
		query = query.Where("size = ?", params.Size)
	}
	if params.Gender != "" {
		query = query.Where("gender = ?", params.Gender)
	}
	if params.MaxAge != nil {
		query = query.Where("age_months <= ?", *params.MaxAge)
	}
	if params.MaxFee != nil {
		query = query.Where("adoption_fee <= ?", *params.MaxFee)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	} else if params.Available {
		query = query.Where("status = ?", models.PetStatusAvailable)
	}
	if params.Search != "" {
		query = query.Where(
			"to_tsvector('english', name || ' ' || coalesce(breed, '') || ' ' || coalesce(description, '')) @@ plainto_tsquery('english', ?)",
			params.Search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pets: %w", err)
	}

	var pets []models.Pet
	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at", "name", "age_months", "adoption_fee"})
	query = utils.ApplyPagination(query, params.PaginationParams)
	if err := query.Find(&pets).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search pets: %w", err)
	}

	return pets, total, nil
}

func (s *PetService) UpdatePet(ctx context.Context, petID uuid.UUID, req *UpdatePetRequest) (*models.Pet, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var pet models.Pet
	if err := s.db.First(&pet, petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("pet not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.Name != nil {
		pet.Name = *req.Name
	}
	if req.Breed != nil {
		pet.Breed = *req.Breed
	}
	if req.AgeMonths != nil {
		pet.AgeMonths = *req.AgeMonths
	}
	if req.Description != nil {
		pet.Description = *req.Description
	}
	if req.Images != nil {
		pet.Images = req.Images
	}
	if req.Vaccinated != nil {
		pet.Vaccinated = *req.Vaccinated
	}
	if req.Neutered != nil {
		pet.Neutered = *req.Neutered
	}
	if req.Microchipped != nil {
		pet.Microchipped = *req.Microchipped
	}
	if req.SpecialNeeds != nil {
		pet.SpecialNeeds = *req.SpecialNeeds
	}
	if req.AdoptionFee != nil {
		pet.AdoptionFee = *req.AdoptionFee
	}

	if err := s.db.Save(&pet).Error; err != nil {
		return nil, fmt.Errorf("failed to update pet: %w", err)
	}

	s.cacheInvalidate(ctx, petID)
	return &pet, nil
}

func (s *PetService) UpdatePetStatus(ctx context.Context, petID uuid.UUID, status models.PetStatus) (*models.Pet, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown pet status %q", status)
	}

	var pet models.Pet
	if err := s.db.First(&pet, petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("pet not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	pet.Status = status
	if err := s.db.Save(&pet).Error; err != nil {
		return nil, fmt.Errorf("failed to update pet status: %w", err)
	}

	s.cacheInvalidate(ctx, petID)
	return &pet, nil
}

func (s *PetService) DeletePet(ctx context.Context, petID uuid.UUID) error {
	result := s.db.Delete(&models.Pet{}, petID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete pet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("pet not found")
	}

	s.cacheInvalidate(ctx, petID)
	return nil
}

func (s *PetService) cacheGet(ctx context.Context, petID uuid.UUID) *models.Pet {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, petCacheKeyPrefix+petID.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.WithError(err).Debug("Pet cache read failed")
		}
		return nil
	}

	var pet models.Pet
	if err := json.Unmarshal(raw, &pet); err != nil {
		logrus.WithError(err).Warn("Discarding corrupt pet cache entry")
		return nil
	}
	return &pet
}

func (s *PetService) cacheSet(ctx context.Context, pet *models.Pet) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(pet)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, petCacheKeyPrefix+pet.ID.String(), raw, s.cacheTTL).Err(); err != nil {
		logrus.WithError(err).Debug("Pet cache write failed")
	}
}

func (s *PetService) cacheInvalidate(ctx context.Context, petID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, petCacheKeyPrefix+petID.String()).Err(); err != nil {
		logrus.WithError(err).Debug("Pet cache invalidation failed")
	}
}
