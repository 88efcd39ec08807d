// Package config reads the process environment (optionally seeded from a
// .env file) into a validated Config.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config is the root configuration object. Keys are the lower-cased
// environment variable names, so DB_USER maps to `db_user`.
type Config struct {
	Port     string `koanf:"port" validate:"required"`
	Env      string `koanf:"app_env" validate:"required"`
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	MongoURI     string `koanf:"mongodb_uri"`
	DBUser       string `koanf:"db_user" validate:"required_without=MongoURI"`
	DBPass       string `koanf:"db_pass" validate:"required_without=MongoURI"`
	DBHost       string `koanf:"db_host" validate:"required"`
	DatabaseName string `koanf:"database_name" validate:"required"`

	AccessTokenSecret string `koanf:"access_token_secret" validate:"required"`
	PaymentSecretKey  string `koanf:"payment_secret_key" validate:"required"`
	PaymentCurrency   string `koanf:"payment_currency" validate:"required,len=3"`

	AllowedOrigins string `koanf:"allowed_origins"`
	ReadTimeout    int    `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout   int    `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout    int    `koanf:"idle_timeout" validate:"gte=0"`

	AdminEmail string `koanf:"admin_email" validate:"omitempty,email"`

	StorageProvider    string `koanf:"storage_provider" validate:"omitempty,oneof=r2 gcs"`
	R2Bucket           string `koanf:"r2_bucket" validate:"required_if=StorageProvider r2"`
	R2AccessKeyID      string `koanf:"r2_access_key_id" validate:"required_if=StorageProvider r2"`
	R2SecretAccessKey  string `koanf:"r2_secret_access_key" validate:"required_if=StorageProvider r2"`
	R2Endpoint         string `koanf:"r2_endpoint" validate:"required_if=StorageProvider r2"`
	R2PublicDomain     string `koanf:"r2_public_domain"`
	GCSBucket          string `koanf:"gcs_bucket" validate:"required_if=StorageProvider gcs"`
	GCSCredentialsFile string `koanf:"credentials_file_location"`
	MaxUploadSizeMB    int    `koanf:"max_upload_size_mb" validate:"gt=0"`
}

func defaults() *Config {
	return &Config{
		Port:            "5000",
		Env:             "development",
		LogLevel:        "info",
		DBHost:          "cluster0.o4dtxo0.mongodb.net",
		DatabaseName:    "parcelDb",
		PaymentCurrency: "usd",
		ReadTimeout:     15,
		WriteTimeout:    15,
		IdleTimeout:     60,
		MaxUploadSizeMB: 5,
	}
}

// Load reads .env (when present) and the environment, applies defaults for
// unset keys and validates the result.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	k := koanf.New(".")
	err := k.Load(env.Provider("", ".", strings.ToLower), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// MongoConnectionURI returns MONGODB_URI when set, otherwise an Atlas SRV
// URI assembled from the credential parts.
func (c *Config) MongoConnectionURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	return fmt.Sprintf(
		"mongodb+srv://%s@%s/?retryWrites=true&w=majority&appName=Cluster0",
		url.UserPassword(c.DBUser, c.DBPass).String(), c.DBHost,
	)
}

// Origins splits ALLOWED_ORIGINS. An empty result means any origin.
func (c *Config) Origins() []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c *Config) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

func (c *Config) WriteTimeoutDuration() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}

func (c *Config) IdleTimeoutDuration() time.Duration {
	return time.Duration(c.IdleTimeout) * time.Second
}

// MaxUploadBytes is the proof-of-delivery upload limit.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadSizeMB) << 20
}
