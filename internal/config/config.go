package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// MinPlannerTimeout is the floor for outbound plan-generation requests.
// Generation runs for minutes on the workflow side before it acks.
const MinPlannerTimeout = 300 * time.Second

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Plan generation workflows
	WorkoutPlannerURL    string
	MealPlannerURL       string
	PlannerTimeout       time.Duration
	PlannerWebhookSecret string
	PublicURL            string

	// Admin
	AdminEmails  string
	AdminUserIDs string
	AdminToken   string

	// Server
	Port        string
	CORSOrigins string

	// Observability
	LogRetention time.Duration
	SentryDSN    string
	AppEnv       string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using system env")
	}

	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "fitcoach"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),

		WorkoutPlannerURL:    getEnv("WORKOUT_PLANNER_URL", "http://localhost:5678/webhook/generate-workout-plan"),
		MealPlannerURL:       getEnv("MEAL_PLANNER_URL", "http://localhost:5678/webhook/generate-meal-plan"),
		PlannerTimeout:       parseDuration(getEnv("PLANNER_TIMEOUT", "300s"), MinPlannerTimeout),
		PlannerWebhookSecret: getEnv("PLANNER_WEBHOOK_SECRET", ""),
		PublicURL:            getEnv("PUBLIC_URL", ""),

		AdminEmails:  getEnv("ADMIN_EMAILS", ""),
		AdminUserIDs: getEnv("ADMIN_USER_IDS", ""),
		AdminToken:   getEnv("ADMIN_TOKEN", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 720*time.Hour),
		SentryDSN:    getEnv("SENTRY_DSN", ""),
		AppEnv:       getEnv("APP_ENV", "development"),
	}

	if cfg.PlannerTimeout < MinPlannerTimeout {
		slog.Warn("PLANNER_TIMEOUT below minimum, clamping", "configured", cfg.PlannerTimeout, "min", MinPlannerTimeout)
		cfg.PlannerTimeout = MinPlannerTimeout
	}

	return cfg
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
