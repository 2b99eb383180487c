package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	AppPort           string        // HTTP listen port
	DBPath            string        // sqlite database file
	JWTSecret         string        // JWT signing key
	AllowRegistration bool          // opens the /register route
	IsProd            bool          // release mode for gin
	BackupDebounce    time.Duration // quiet window before an auto backup fires
	AutoSyncDelay     time.Duration // nominal duration of the auto upload stub
	ManualSyncDelay   time.Duration // nominal duration of the manual upload stub
}

// LoadConfig loads configuration from environment variables, with local
// defaults so the server runs out of the box.
func LoadConfig() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		DBPath:            getEnv("DB_PATH", "swiftpos.db"),
		JWTSecret:         getEnv("JWT_SECRET", "swiftpos_dev_secret_change_me"),
		AllowRegistration: os.Getenv("ALLOW_REGISTRATION") == "true",
		IsProd:            os.Getenv("IS_PROD") == "true",
		BackupDebounce:    getDuration("BACKUP_DEBOUNCE", 5*time.Second),
		AutoSyncDelay:     getDuration("AUTO_SYNC_DELAY", 2*time.Second),
		ManualSyncDelay:   getDuration("MANUAL_SYNC_DELAY", 1500*time.Millisecond),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
