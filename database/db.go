package database

import (
	"fmt"
	"os"

	"transitaire-backend/logger"
	"transitaire-backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Connect() {
	log := logger.WithComponent("database")

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, relying on environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Africa/Conakry",
		envOr("DB_HOST", "db"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), envOr("DB_PORT", "5432"))

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true, // surface gorm.ErrDuplicatedKey on unique violations
	})
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}
}

// AutoMigrate applies the shared (public schema) tables. Tenant tables live
// in per-agency schemas, see MigrateTenantSchema.
func AutoMigrate() {
	if err := DB.AutoMigrate(&models.ContactPerson{}, &models.Company{}, &models.User{}); err != nil {
		logger.WithComponent("database").Fatal().Err(err).Msg("public automigrate failed")
	}
}
