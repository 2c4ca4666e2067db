package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"catalog-import-service/internal/models"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisURL string

	// Server
	Port        string
	Environment string

	// Catalog service
	CatalogServiceURL string
	CatalogTimeout    time.Duration
	CatalogRateLimit  float64
	CatalogPageSize   int

	// Uploads
	UploadTTL      time.Duration
	MaxUploadBytes int64

	// Events
	NATSURL           string
	NATSSubjectPrefix string
}

func Load() *Config {
	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	catalogTimeout, _ := strconv.Atoi(getEnv("CATALOG_TIMEOUT_SECONDS", "10"))
	catalogRateLimit, _ := strconv.ParseFloat(getEnv("CATALOG_RATE_LIMIT", "0"), 64)
	catalogPageSize, _ := strconv.Atoi(getEnv("CATALOG_PAGE_SIZE", "10000"))
	uploadTTL, _ := strconv.Atoi(getEnv("UPLOAD_TTL_MINUTES", "30"))
	maxUploadMB, _ := strconv.Atoi(getEnv("MAX_UPLOAD_MB", "20"))

	return &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "catalog_import_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Server
		Port:        getEnv("PORT", "8093"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Catalog service
		CatalogServiceURL: getEnv("CATALOG_SERVICE_URL", "http://localhost:8087"),
		CatalogTimeout:    time.Duration(catalogTimeout) * time.Second,
		CatalogRateLimit:  catalogRateLimit,
		CatalogPageSize:   catalogPageSize,

		// Uploads
		UploadTTL:      time.Duration(uploadTTL) * time.Minute,
		MaxUploadBytes: int64(maxUploadMB) << 20,

		// Events; an empty URL disables publishing
		NATSURL:           getEnv("NATS_URL", ""),
		NATSSubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "catalog.import"),
	}
}

// DSN returns the postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	var logLevel logger.LogLevel
	if cfg.Environment == "production" {
		logLevel = logger.Error
	} else {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logrus.Info("Running auto-migrations...")
	if err := db.AutoMigrate(&models.ImportJob{}); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "does not exist") && strings.Contains(errStr, "constraint") {
			logrus.Warnf("Migration constraint warning (safe to ignore): %v", err)
		} else {
			return nil, fmt.Errorf("failed to run auto-migrations: %w", err)
		}
	}
	logrus.Info("Auto-migrations completed successfully")

	return db, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
