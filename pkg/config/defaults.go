// Package config provides centralized default values for storefront-go
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Database
	SQLitePath    string
	TursoDatabase string
	TursoToken    string

	// Database Pool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	DBConnMaxIdleMinutes     int

	// Auth
	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	// Catalog
	ProductsPerPage    int
	LatestProductCount int
	LatestOrderCount   int

	// Media
	MediaPath      string
	ThumbnailWidth int

	// Email
	ResendAPIKey   string
	OrderEmailFrom string
	OrderEmailName string
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "4000")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Database
	SQLitePath = getEnvString("DB_PATH", "data/storefront.db")
	TursoDatabase = getEnvString("TURSO_DATABASE_URL", "")
	TursoToken = getEnvString("TURSO_AUTH_TOKEN", "")

	// Database Pool
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	DBConnMaxIdleMinutes = getEnvInt("DB_CONN_MAX_IDLE_MINUTES", 3)

	// Auth
	JWTSecret = getEnvString("JWT_SECRET", "")
	AdminEmail = getEnvString("ADMIN_EMAIL", "")
	AdminPassword = getEnvString("ADMIN_PASSWORD", "")

	// Catalog
	ProductsPerPage = getEnvInt("PRODUCTS_PER_PAGE", 8)
	LatestProductCount = getEnvInt("LATEST_PRODUCT_COUNT", 5)
	LatestOrderCount = getEnvInt("LATEST_ORDER_COUNT", 10)

	// Media
	MediaPath = getEnvString("MEDIA_PATH", "uploads")
	ThumbnailWidth = getEnvInt("THUMBNAIL_WIDTH", 400)

	// Email
	ResendAPIKey = getEnvString("RESEND_API_KEY", "")
	OrderEmailFrom = getEnvString("ORDER_EMAIL_FROM", "orders@storefront.local")
	OrderEmailName = getEnvString("ORDER_EMAIL_FROM_NAME", "Storefront")
}
