// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/petpal/petpal-backend/internal/config"
	"github.com/petpal/petpal-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Pet{},
		&models.Application{},
		&models.AdoptionHistoryEntry{},
		&models.AdopterVerification{},
		&models.LostPetReport{},
		&models.Reminder{},
		&models.CareEntry{},
		&models.AuditLog{},
		&models.AdminNotification{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_type_status ON users(user_type, status)",

		// Pet indexes
		"CREATE INDEX IF NOT EXISTS idx_pets_species_status ON pets(species, status)",
		"CREATE INDEX IF NOT EXISTS idx_pets_created_at ON pets(created_at DESC)",

		// Application indexes
		"CREATE INDEX IF NOT EXISTS idx_applications_adopter ON applications(adopter_id)",
		"CREATE INDEX IF NOT EXISTS idx_applications_pet ON applications(pet_id)",
		"CREATE INDEX IF NOT EXISTS idx_applications_status ON applications(status)",
		"CREATE INDEX IF NOT EXISTS idx_applications_pet_adopter_status ON applications(pet_id, adopter_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_applications_submitted_at ON applications(submitted_at DESC)",

		// Adoption history indexes
		"CREATE INDEX IF NOT EXISTS idx_adoption_history_user ON adoption_history_entries(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_adoption_history_application ON adoption_history_entries(application_id)",

		// Verification indexes
		"CREATE INDEX IF NOT EXISTS idx_verifications_status ON adopter_verifications(status)",
		"CREATE INDEX IF NOT EXISTS idx_verifications_email ON adopter_verifications(adopter_email)",
		"CREATE INDEX IF NOT EXISTS idx_verifications_submission ON adopter_verifications(submission_date DESC)",

		// Lost pet indexes
		"CREATE INDEX IF NOT EXISTS idx_lost_pets_status ON lost_pet_reports(status, last_seen_at DESC)",

		// Reminder and care indexes
		"CREATE INDEX IF NOT EXISTS idx_reminders_user_due ON reminders(user_id, due_at)",
		"CREATE INDEX IF NOT EXISTS idx_care_entries_user_pet ON care_entries(user_id, pet_id, occurred_at DESC)",

		// Admin indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_admin_notifications_status ON admin_notifications(status, priority)",

		// Full-text search index for the catalog
		"CREATE INDEX IF NOT EXISTS idx_pets_search ON pets USING GIN(to_tsvector('english', name || ' ' || coalesce(breed, '') || ' ' || coalesce(description, '')))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	// Create default shelter admin
	var adminCount int64
	db.Model(&models.User{}).Where("user_type = ?", models.UserTypeShelterAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Email:     "admin@petpal.app",
			FirstName: "Shelter",
			LastName:  "Admin",
			UserType:  models.UserTypeShelterAdmin,
			Status:    models.UserStatusActive,
			ProfileData: models.JSONB{
				"shelter_name": "PetPal Shelter",
				"role":         "super_admin",
			},
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default shelter admin created successfully")
	}

	// Seed a small demo catalog so a fresh install is browsable
	var petCount int64
	db.Model(&models.Pet{}).Count(&petCount)

	if petCount == 0 {
		demoPets := []models.Pet{
			{
				Name:           "Buddy",
				Species:        "dog",
				Breed:          "Golden Retriever",
				AgeMonths:      30,
				Gender:         "male",
				Size:           "large",
				Description:    "Friendly and energetic, great with kids.",
				Images:         []string{"https://images.petpal.app/pets/buddy-1.jpg"},
				Status:         models.PetStatusAvailable,
				Vaccinated:     true,
				Neutered:       true,
				Microchipped:   true,
				ShelterName:    "PetPal Shelter",
				ShelterContact: "adoptions@petpal.app",
				ShelterPhone:   "555-0100",
				Latitude:       30.2672,
				Longitude:      -97.7431,
				AdoptionFee:    150,
			},
			{
				Name:           "Whiskers",
				Species:        "cat",
				Breed:          "Domestic Shorthair",
				AgeMonths:      18,
				Gender:         "female",
				Size:           "small",
				Description:    "Calm lap cat, prefers a quiet home.",
				Images:         []string{"https://images.petpal.app/pets/whiskers-1.jpg"},
				Status:         models.PetStatusAvailable,
				Vaccinated:     true,
				Neutered:       true,
				ShelterName:    "PetPal Shelter",
				ShelterContact: "adoptions@petpal.app",
				ShelterPhone:   "555-0100",
				Latitude:       30.2672,
				Longitude:      -97.7431,
				AdoptionFee:    90,
			},
		}

		for _, pet := range demoPets {
			if err := db.Create(&pet).Error; err != nil {
				log.Printf("Warning: Failed to seed pet %s: %v", pet.Name, err)
			}
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
