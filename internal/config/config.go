package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string // Application port
	DataDir        string // Badger data directory
	JWTSecret      string // JWT secret key
	RedisAddr      string // Redis server address
	RedisPass      string // Redis password
	RedisDB        int    // Redis database number
	StaticUpstream string // Origin serving the static frontend
	EmailEndpoint  string // Notification mail relay URL (empty disables email)
	GeocodeURL     string // Reverse geocoding base URL (empty uses the default)
	IsProd         bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:        os.Getenv("APP_PORT"),          // Application port
		DataDir:        os.Getenv("DATA_DIR"),          // Badger data directory
		JWTSecret:      os.Getenv("JWT_SECRET"),        // JWT secret key
		RedisAddr:      os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:        redisDB,                        // Redis database number
		StaticUpstream: os.Getenv("STATIC_UPSTREAM"),   // Static frontend origin
		EmailEndpoint:  os.Getenv("EMAIL_ENDPOINT"),    // Mail relay URL
		GeocodeURL:     os.Getenv("GEOCODE_URL"),       // Reverse geocoder base URL
		IsProd:         os.Getenv("IS_PROD") == "true", // Is production environment
	}
}
