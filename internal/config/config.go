package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// HTTP Server Configuration
	HTTPPort         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration

	// Storage Configuration ("memory" or "mongo")
	StorageBackend string
	MongoURI       string
	MongoDatabase  string
	MongoTimeout   time.Duration

	// Worker Pool Configuration
	WorkerPoolSize int
	JobQueueSize   int

	// Simulator Configuration (stage delays, milliseconds)
	StageFetchDelay   time.Duration
	StageCleanDelay   time.Duration
	StageBuildDelay   time.Duration
	StageDepositDelay time.Duration
	StageSettleDelay  time.Duration

	// Probe Configuration
	ProbeTimeout       time.Duration
	ProbeMaxAttempts   int
	ProbeInitialDelay  int // milliseconds
	ProbeMaxDelay      int // milliseconds
	ProbeDelayMultiply float64

	// Logging Configuration
	LogLevel  string
	LogFormat string

	// CORS Configuration
	CORSAllowedOrigins   string
	CORSAllowedMethods   string
	CORSAllowedHeaders   string
	CORSAllowCredentials bool
	CORSMaxAge           int
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		// HTTP Server
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		HTTPReadTimeout:  getDurationEnv("HTTP_READ_TIMEOUT_SEC", 30) * time.Second,
		HTTPWriteTimeout: getDurationEnv("HTTP_WRITE_TIMEOUT_SEC", 30) * time.Second,

		// Storage
		StorageBackend: getEnv("STORAGE_BACKEND", "memory"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017/datahub?authSource=admin"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "datahub"),
		MongoTimeout:   getDurationEnv("MONGO_TIMEOUT_SEC", 10) * time.Second,

		// Worker Pool
		WorkerPoolSize: getIntEnv("WORKER_POOL_SIZE", 8),
		JobQueueSize:   getIntEnv("JOB_QUEUE_SIZE", 256),

		// Simulator stage delays
		StageFetchDelay:   getDurationEnv("STAGE_FETCH_DELAY_MS", 1500) * time.Millisecond,
		StageCleanDelay:   getDurationEnv("STAGE_CLEAN_DELAY_MS", 1000) * time.Millisecond,
		StageBuildDelay:   getDurationEnv("STAGE_BUILD_DELAY_MS", 800) * time.Millisecond,
		StageDepositDelay: getDurationEnv("STAGE_DEPOSIT_DELAY_MS", 1200) * time.Millisecond,
		StageSettleDelay:  getDurationEnv("STAGE_SETTLE_DELAY_MS", 300) * time.Millisecond,

		// Probe
		ProbeTimeout:       getDurationEnv("PROBE_TIMEOUT_SEC", 15) * time.Second,
		ProbeMaxAttempts:   getIntEnv("PROBE_MAX_ATTEMPTS", 4),
		ProbeInitialDelay:  getIntEnv("PROBE_INITIAL_DELAY_MS", 500),
		ProbeMaxDelay:      getIntEnv("PROBE_MAX_DELAY_MS", 10000),
		ProbeDelayMultiply: getFloatEnv("PROBE_DELAY_MULTIPLIER", 2.0),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// CORS
		CORSAllowedOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "*"),
		CORSAllowedMethods:   getEnv("CORS_ALLOWED_METHODS", "GET, POST, PUT, DELETE, OPTIONS, PATCH"),
		CORSAllowedHeaders:   getEnv("CORS_ALLOWED_HEADERS", "*"),
		CORSAllowCredentials: getBoolEnv("CORS_ALLOW_CREDENTIALS", true),
		CORSMaxAge:           getIntEnv("CORS_MAX_AGE", 3600),
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return time.Duration(intVal)
		}
		log.Printf("Warning: Invalid duration value for %s, using default %d", key, defaultValue)
	}
	return time.Duration(defaultValue)
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: Invalid boolean value for %s, using default %t", key, defaultValue)
	}
	return defaultValue
}
