package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreBackendMongo     = "mongo"
	StoreBackendFirestore = "firestore"
	StoreBackendMemory    = "memory"
)

// Metadata providers.
const (
	ProviderDataAPI = "data-api"
	ProviderPlayer  = "player"
	ProviderMock    = "mock"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	MongoDB   MongoDBConfig
	Firestore FirestoreConfig
	YouTube   YouTubeConfig
	API       APIConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ShutdownTimeout time.Duration
}

type StoreConfig struct {
	Backend      string
	SeedDefaults bool
}

type MongoDBConfig struct {
	URI             string
	Database        string
	Collection      string
	Timeout         time.Duration
	UseTransactions bool
}

type FirestoreConfig struct {
	ProjectID  string
	Collection string
}

type YouTubeConfig struct {
	Provider string
	APIKey   string
	Timeout  time.Duration
	MockSeed int64
}

type APIConfig struct {
	APIKey            string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitBurst    int
}

type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
	Profile          string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("PORT", getEnv("SERVER_PORT", "3000"))
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
	shutdownTimeout, err := time.ParseDuration(getEnv("SERVER_SHUTDOWN_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.Server.ShutdownTimeout = shutdownTimeout

	// Store configuration
	cfg.Store.Backend = strings.ToLower(getEnv("STORE_BACKEND", StoreBackendMongo))
	cfg.Store.SeedDefaults = getEnvBool("STORE_SEED_DEFAULTS", false)

	// MongoDB configuration
	cfg.MongoDB.URI = getEnv("MONGODB_URI", "mongodb://localhost:27017")
	cfg.MongoDB.Database = getEnv("MONGODB_DATABASE", "learnoverse")
	cfg.MongoDB.Collection = getEnv("MONGODB_COLLECTION", "videos")
	mongoTimeout, err := time.ParseDuration(getEnv("MONGODB_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONGODB_TIMEOUT: %w", err)
	}
	cfg.MongoDB.Timeout = mongoTimeout
	cfg.MongoDB.UseTransactions = getEnvBool("MONGODB_USE_TRANSACTIONS", false)

	// Firestore configuration
	cfg.Firestore.ProjectID = getEnv("FIRESTORE_PROJECT_ID", "")
	cfg.Firestore.Collection = getEnv("FIRESTORE_COLLECTION", "videos")

	// YouTube configuration
	cfg.YouTube.Provider = strings.ToLower(getEnv("METADATA_PROVIDER", ProviderDataAPI))
	cfg.YouTube.APIKey = getEnv("YOUTUBE_API_KEY", "")
	ytTimeout, err := time.ParseDuration(getEnv("YOUTUBE_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid YOUTUBE_TIMEOUT: %w", err)
	}
	cfg.YouTube.Timeout = ytTimeout
	cfg.YouTube.MockSeed = getEnvInt64("MOCK_SEED", 0)

	// API configuration
	cfg.API.APIKey = getEnv("API_KEY", "")
	cfg.API.RateLimitRequests = getEnvInt("RATE_LIMIT_REQUESTS", 100)
	rateLimitWindow, err := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}
	cfg.API.RateLimitWindow = rateLimitWindow
	cfg.API.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", 20)

	// CORS configuration
	cfg.CORS = loadCORSConfig()

	return cfg, nil
}

// Validate reports every configuration problem at once so a misconfigured
// deployment fails at startup instead of on the first request.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}

	switch c.Store.Backend {
	case StoreBackendMongo:
		if c.MongoDB.URI == "" {
			errs = append(errs, errors.New("MONGODB_URI is required for the mongo store"))
		}
		if c.MongoDB.Collection == "" {
			errs = append(errs, errors.New("MONGODB_COLLECTION must not be empty"))
		}
	case StoreBackendFirestore:
		if c.Firestore.ProjectID == "" {
			errs = append(errs, errors.New("FIRESTORE_PROJECT_ID is required for the firestore store"))
		}
	case StoreBackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend))
	}

	switch c.YouTube.Provider {
	case ProviderDataAPI:
		if c.YouTube.APIKey == "" {
			errs = append(errs, errors.New("YOUTUBE_API_KEY is required for the data-api metadata provider"))
		}
	case ProviderPlayer, ProviderMock:
	default:
		errs = append(errs, fmt.Errorf("unknown METADATA_PROVIDER %q", c.YouTube.Provider))
	}

	if c.API.RateLimitRequests <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS must be positive"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(strings.TrimSpace(value), ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

// loadCORSConfig loads CORS configuration based on profile or custom settings
func loadCORSConfig() CORSConfig {
	profile := getEnv("CORS_PROFILE", "development")

	switch profile {
	case "production":
		return getProductionCORSConfig()
	case "custom":
		return getCustomCORSConfig()
	default:
		return getDevelopmentCORSConfig()
	}
}

// getDevelopmentCORSConfig allows any origin so the mobile client and
// the Expo dev server can reach a local backend.
func getDevelopmentCORSConfig() CORSConfig {
	return CORSConfig{
		Enabled:        getEnvBool("CORS_ENABLED", true),
		AllowedOrigins: getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		AllowedMethods: getEnvStringSlice("CORS_ALLOWED_METHODS", []string{
			"GET", "POST", "OPTIONS",
		}),
		AllowedHeaders: getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{
			"Origin", "Content-Type", "Accept", "X-API-Key", "X-Correlation-ID",
		}),
		ExposedHeaders: getEnvStringSlice("CORS_EXPOSED_HEADERS", []string{
			"X-Correlation-ID", "X-Request-ID",
		}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", false),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 86400),
		Profile:          "development",
	}
}

// getProductionCORSConfig returns secure CORS settings for production
func getProductionCORSConfig() CORSConfig {
	return CORSConfig{
		Enabled: getEnvBool("CORS_ENABLED", true),
		AllowedOrigins: getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{
			"https://app.learnoverse.com",
		}),
		AllowedMethods: getEnvStringSlice("CORS_ALLOWED_METHODS", []string{
			"GET", "POST", "OPTIONS",
		}),
		AllowedHeaders: getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{
			"Origin", "Content-Type", "Accept", "X-API-Key",
		}),
		ExposedHeaders:   getEnvStringSlice("CORS_EXPOSED_HEADERS", []string{"X-Request-ID"}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
		Profile:          "production",
	}
}

// getCustomCORSConfig returns CORS settings from individual environment variables
func getCustomCORSConfig() CORSConfig {
	return CORSConfig{
		Enabled: getEnvBool("CORS_ENABLED", true),
		AllowedOrigins: getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:8081",
		}),
		AllowedMethods: getEnvStringSlice("CORS_ALLOWED_METHODS", []string{
			"GET", "POST", "OPTIONS",
		}),
		AllowedHeaders: getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{
			"Origin", "Content-Type", "Accept",
		}),
		ExposedHeaders:   getEnvStringSlice("CORS_EXPOSED_HEADERS", []string{}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", false),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
		Profile:          "custom",
	}
}
