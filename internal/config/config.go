package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	Environment string
	Port        string
	APIPrefix   string

	DBDriver          string
	DatabaseURL       string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBTimeZone        string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime time.Duration
	SQLitePath        string

	JWTSecret string
	TokenTTL  time.Duration

	LogLevel  string
	LogFormat string

	SeedDemoData      bool
	AdminEmail        string
	AdminPassword     string
	LowStockThreshold int
	TimeZone          string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("APP_ENV", "development")

	return Config{
		AppName:     getenv("APP_NAME", "Toko Besi Sales v1.0"),
		Environment: environment,
		Port:        getenv("PORT", "3000"),
		APIPrefix:   strings.TrimRight(getenv("API_PREFIX", ""), "/"),

		DBDriver:          strings.ToLower(getenv("DB_DRIVER", "postgres")),
		DatabaseURL:       strings.TrimSpace(getenv("DATABASE_URL", "")),
		DBHost:            getenv("DB_HOST", "localhost"),
		DBPort:            getenv("DB_PORT", "5432"),
		DBName:            getenv("DB_NAME", "tokobesi"),
		DBUser:            getenv("DB_USER", "postgres"),
		DBPassword:        getenv("DB_PASSWORD", ""),
		DBSSLMode:         getenv("DB_SSLMODE", "disable"),
		DBTimeZone:        getenv("DB_TIMEZONE", "Asia/Jakarta"),
		DBMaxIdleConn:     getenvInt("DB_MAX_IDLE_CONN", 10),
		DBMaxOpenConn:     getenvInt("DB_MAX_OPEN_CONN", 100),
		DBConnMaxLifetime: time.Duration(getenvInt("DB_CONN_MAX_LIFETIME_MINUTES", 60)) * time.Minute,
		SQLitePath:        getenv("SQLITE_PATH", "tokobesi.db"),

		JWTSecret: getenv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		TokenTTL:  time.Duration(getenvInt("TOKEN_TTL_HOURS", 7*24)) * time.Hour,

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", defaultLogFormat(environment)),

		SeedDemoData:      getenvBool("SEED_DEMO_DATA", environment != "production"),
		AdminEmail:        strings.ToLower(getenv("ADMIN_EMAIL", "admin@tokobesi.local")),
		AdminPassword:     getenv("ADMIN_PASSWORD", "besi12345"),
		LowStockThreshold: getenvInt("LOW_STOCK_THRESHOLD", 10),
		TimeZone:          getenv("APP_TIMEZONE", "Asia/Jakarta"),
	}
}

// IsProduction reports whether the service runs with production defaults.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Location is the zone report dates are read in ("2024-05-01" means that day
// in this zone). Hosts without tzdata fall back to WIB (UTC+7).
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

func defaultLogFormat(environment string) string {
	if environment == "production" {
		return "json"
	}
	return "console"
}

func getenv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value := getenv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string, fallback bool) bool {
	value := getenv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
