package config

import (
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	// StatementTimeout bounds every statement server side; zero leaves the server default.
	StatementTimeout time.Duration
	ConnectAttempts  int
	ConnectBackoff   time.Duration
	AutoMigrate      bool
}

// MinIOConfig holds object storage settings for exported reports.
// An empty Endpoint disables link delivery of exports.
type MinIOConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	UseSSL     bool
	LinkExpiry time.Duration
}

// RedisConfig holds the connection settings of the token blacklist store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig holds token signing and password hashing settings.
type AuthConfig struct {
	JWTSecret  string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	BcryptCost int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables and, optionally, a config file.
type AppConfig struct {
	AppHost   string
	Port      string
	Timezone  string
	LogLevel  string
	LogFormat string
	Database  DatabaseConfig
	MinIO     MinIOConfig
	Redis     RedisConfig
	Auth      AuthConfig
}

var defaults = map[string]any{
	"APP_HOST":                 "localhost:8080",
	"PORT":                     "8080",
	"TZ":                       "UTC",
	"LOG_LEVEL":                "info",
	"LOG_FORMAT":               "json",
	"DB_PORT":                  "5432",
	"DB_SSLMODE":               "disable",
	"DB_MAX_OPEN_CONNS":        10,
	"DB_MAX_IDLE_CONNS":        5,
	"DB_CONN_MAX_LIFETIME_SEC": 300,
	"DB_STATEMENT_TIMEOUT":     30 * time.Second,
	"DB_CONNECT_ATTEMPTS":      5,
	"DB_CONNECT_BACKOFF":       2 * time.Second,
	"DB_AUTO_MIGRATE":          true,
	"MINIO_USE_SSL":            false,
	"MINIO_BUCKET":             "exports",
	"MINIO_LINK_EXPIRY":        15 * time.Minute,
	"REDIS_ADDR":               "localhost:6379",
	"REDIS_DB":                 0,
	"JWT_ISSUER":               "crmapi",
	"JWT_ACCESS_TTL":           5 * time.Minute,
	"JWT_REFRESH_TTL":          24 * time.Hour,
	"BCRYPT_COST":              12,
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// When CONFIG_FILE points to a YAML file its keys are used as a fallback for unset variables;
// real environment variables take precedence.
func Load() *AppConfig {
	v := newViper()

	return &AppConfig{
		AppHost:   v.GetString("APP_HOST"),
		Port:      v.GetString("PORT"),
		Timezone:  v.GetString("TZ"),
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
		Database: DatabaseConfig{
			Host:               v.GetString("DB_HOST"),
			Port:               v.GetString("DB_PORT"),
			User:               v.GetString("DB_USER"),
			Password:           v.GetString("DB_PASSWORD"),
			Name:               v.GetString("DB_NAME"),
			SSLMode:            v.GetString("DB_SSLMODE"),
			MaxOpenConns:       v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:       v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetimeSec: v.GetInt("DB_CONN_MAX_LIFETIME_SEC"),
			StatementTimeout:   v.GetDuration("DB_STATEMENT_TIMEOUT"),
			ConnectAttempts:    v.GetInt("DB_CONNECT_ATTEMPTS"),
			ConnectBackoff:     v.GetDuration("DB_CONNECT_BACKOFF"),
			AutoMigrate:        v.GetBool("DB_AUTO_MIGRATE"),
		},
		MinIO: MinIOConfig{
			Endpoint:   v.GetString("MINIO_ENDPOINT"),
			AccessKey:  v.GetString("MINIO_ACCESS_KEY"),
			SecretKey:  v.GetString("MINIO_SECRET_KEY"),
			Bucket:     v.GetString("MINIO_BUCKET"),
			UseSSL:     v.GetBool("MINIO_USE_SSL"),
			LinkExpiry: v.GetDuration("MINIO_LINK_EXPIRY"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Auth: AuthConfig{
			JWTSecret:  v.GetString("JWT_SECRET"),
			Issuer:     v.GetString("JWT_ISSUER"),
			AccessTTL:  v.GetDuration("JWT_ACCESS_TTL"),
			RefreshTTL: v.GetDuration("JWT_REFRESH_TTL"),
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, def := range defaults {
		v.SetDefault(k, def)
	}
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		// A missing or unreadable file leaves env + defaults in place.
		_ = v.ReadInConfig()
	}
	return v
}
