package config

import (
	"os"
	"strconv"
	"time"

	gormlogger "gorm.io/gorm/logger"

	"github.com/VytautasPliadis/Recommendation-Engine/pkg/database"
)

// Config holds all configuration for the service
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	NATS      NATSConfig
	Recommend RecommendConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPPort     int
	Environment  string
	LogLevel     string
	ShutdownTime time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// NATSConfig holds NATS configuration. An empty URL disables the
// JetStream event forwarder.
type NATSConfig struct {
	URL           string
	StreamName    string
	ClientID      string
	MaxReconnect  int
	ReconnectWait time.Duration
}

// RecommendConfig holds recommendation engine tuning knobs.
type RecommendConfig struct {
	ScoreWindow float64
	ResultLimit int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:     getEnvAsInt("HTTP_PORT", 8005),
			Environment:  getEnv("ENVIRONMENT", "development"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			ShutdownTime: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "recommender"),
			Password:     getEnv("DB_PASSWORD", "recommender"),
			Database:     getEnv("DB_NAME", "recommender"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
		},
		NATS: NATSConfig{
			URL:           getEnv("NATS_URL", ""),
			StreamName:    getEnv("NATS_STREAM", "RECOMMENDER"),
			ClientID:      getEnv("NATS_CLIENT_ID", "recommender-"+getEnv("HOSTNAME", "local")),
			MaxReconnect:  getEnvAsInt("NATS_MAX_RECONNECT", 60),
			ReconnectWait: getEnvAsDuration("NATS_RECONNECT_WAIT", 2*time.Second),
		},
		Recommend: RecommendConfig{
			ScoreWindow: getEnvAsFloat("RECOMMEND_SCORE_WINDOW", 0.5),
			ResultLimit: getEnvAsInt("RECOMMEND_RESULT_LIMIT", 10),
		},
	}
}

// ToPostgresConfig converts the database section into the connection
// configuration used by pkg/database.
func (c DatabaseConfig) ToPostgresConfig(environment string) *database.PostgresConfig {
	logLevel := gormlogger.Warn
	if environment == "development" {
		logLevel = gormlogger.Info
	}
	return &database.PostgresConfig{
		Host:            c.Host,
		Port:            c.Port,
		User:            c.User,
		Password:        c.Password,
		Database:        c.Database,
		SSLMode:         c.SSLMode,
		MaxConnections:  c.MaxOpenConns,
		MinConnections:  c.MaxIdleConns,
		MaxConnLifetime: c.MaxLifetime,
		MaxConnIdleTime: 30 * time.Minute,
		LogLevel:        logLevel,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return defaultValue
}
