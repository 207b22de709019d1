package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

const minBcryptCost = 12

type Config struct {
	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// JWT
	JWTSecret string
	JWTExpiry time.Duration

	// Credentials
	BcryptCost        int
	PasswordMinLength int

	// Server
	Port                   string
	CORSOrigins            string
	BodyLimit              int
	RateLimitPerMinute     int
	AuthRateLimitPerMinute int

	// Generation stub
	GenerateDelay time.Duration

	// Logging
	LogRetention time.Duration

	// Error tracking
	SentryDSN string
	AppEnv    string
}

func Load() *Config {
	cost := parseInt(getEnv("BCRYPT_COST", "12"), minBcryptCost)
	if cost < minBcryptCost {
		cost = minBcryptCost
	}

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "visioscript"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "visioscript.db"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "24h"), 24*time.Hour),

		BcryptCost:        cost,
		PasswordMinLength: parseInt(getEnv("PASSWORD_MIN_LENGTH", "6"), 6),

		Port:                   getEnv("PORT", "8080"),
		CORSOrigins:            getEnv("CORS_ORIGINS", "*"),
		BodyLimit:              parseInt(getEnv("BODY_LIMIT_BYTES", "4194304"), 4*1024*1024),
		RateLimitPerMinute:     parseInt(getEnv("RATE_LIMIT_PER_MINUTE", "60"), 60),
		AuthRateLimitPerMinute: parseInt(getEnv("AUTH_RATE_LIMIT_PER_MINUTE", "10"), 10),

		GenerateDelay: parseDuration(getEnv("GENERATE_DELAY", "2s"), 2*time.Second),

		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 30*24*time.Hour),

		SentryDSN: getEnv("SENTRY_DSN", ""),
		AppEnv:    getEnv("APP_ENV", ""),
	}
}

// Validate reports the first missing setting the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if c.DBDriver == "postgres" && c.DBPassword == "" {
		return errors.New("DB_PASSWORD environment variable is required")
	}
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
		return errors.New("DB_DRIVER must be postgres or sqlite")
	}
	return nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
