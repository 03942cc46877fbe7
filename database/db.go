package database

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/odhiambo-ed/ReUbuntu/models"
	"github.com/odhiambo-ed/ReUbuntu/pricing"
)

var DB *gorm.DB

// ConnectPostgres opens the Postgres connection with retry and pool
// settings, then runs AutoMigrate for the given models.
func ConnectPostgres(logger *zap.Logger, autoMigrateModels ...interface{}) (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	dbUser := os.Getenv("POSTGRES_USER")
	dbPassword := os.Getenv("POSTGRES_PASSWORD")
	dbName := os.Getenv("POSTGRES_DB")
	dbHost := os.Getenv("POSTGRES_HOST")
	dbPort := os.Getenv("POSTGRES_PORT")
	dbSSLMode := os.Getenv("POSTGRES_SSLMODE")

	if dbUser == "" {
		return nil, fmt.Errorf("POSTGRES_USER not set")
	}
	if dbPassword == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD not set")
	}
	if dbName == "" {
		return nil, fmt.Errorf("POSTGRES_DB not set")
	}

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbSSLMode == "" {
		dbSSLMode = "disable"
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbHost, dbUser, dbPassword, dbName, dbPort, dbSSLMode,
	)

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			sqlDB, poolErr := db.DB()
			if poolErr == nil {
				sqlDB.SetMaxOpenConns(25)
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
			}

			logger.Info("Connected to PostgreSQL successfully")

			if len(autoMigrateModels) > 0 {
				if err := db.AutoMigrate(autoMigrateModels...); err != nil {
					return nil, fmt.Errorf("AutoMigrate failed: %w", err)
				}
			}
			return db, nil
		}

		logger.Warn("DB connection failed, retrying",
			zap.Int("attempt", i+1),
			zap.Error(err),
		)
		time.Sleep(time.Duration(i+1) * 2 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to PostgreSQL after retries: %w", err)
}

// Connect opens the shared connection and migrates the portal tables.
func Connect(logger *zap.Logger) error {
	var err error
	DB, err = ConnectPostgres(logger,
		&models.Upload{},
		&models.UploadError{},
		&models.InventoryItem{},
		&models.ConditionMultiplier{},
		&models.CategoryMultiplier{},
	)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", zap.Error(err))
		return err
	}
	if err := seedPricingDefaults(DB); err != nil {
		logger.Error("Failed to seed pricing multipliers", zap.Error(err))
		return err
	}
	return nil
}

// seedPricingDefaults populates the multiplier tables with the built-in
// defaults when they are empty. Existing rows are never overwritten.
func seedPricingDefaults(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.ConditionMultiplier{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		var rows []models.ConditionMultiplier
		for condition, mult := range pricing.DefaultConditionMultipliers {
			rows = append(rows, models.ConditionMultiplier{Condition: condition, Multiplier: mult})
		}
		if err := db.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to seed condition multipliers: %w", err)
		}
	}

	if err := db.Model(&models.CategoryMultiplier{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		var rows []models.CategoryMultiplier
		for category, mult := range pricing.DefaultCategoryMultipliers {
			rows = append(rows, models.CategoryMultiplier{Category: category, Multiplier: mult})
		}
		if err := db.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to seed category multipliers: %w", err)
		}
	}
	return nil
}

// Close shuts down the shared connection.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
