package configs

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every env-sourced setting. It is built once by Load in
// main and passed into each constructor; nothing reads the environment
// after startup.
type Config struct {
	ApplicationName string
	ServerPort      string

	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	// AWSEndpoint overrides the AWS endpoint for LocalStack setups.
	AWSEndpoint string

	S3Bucket      string
	DynamoDBTable string

	CacheExpiry  time.Duration
	CacheEnabled bool
	AuditEnabled bool

	HTTPTimeout    time.Duration
	AWSCallTimeout time.Duration
}

// Load reads configuration from the environment, with a .env file as
// fallback, and validates required settings.
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/3.0/weather")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("S3_BUCKET", "weather-data-bucket")
	v.SetDefault("DYNAMODB_TABLE", "weather-logs")
	v.SetDefault("CACHE_EXPIRY_MINUTES", 5)
	v.SetDefault("CACHE_ENABLED", true)
	v.SetDefault("AUDIT_ENABLED", true)
	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("AWS_CALL_TIMEOUT", "10s")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("APPLICATION_NAME", "weather-api")

	cfg := &Config{
		ApplicationName:    v.GetString("APPLICATION_NAME"),
		ServerPort:         v.GetString("SERVER_PORT"),
		OpenWeatherAPIKey:  v.GetString("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL: v.GetString("OPENWEATHER_BASE_URL"),
		AWSAccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:          v.GetString("AWS_REGION"),
		AWSEndpoint:        v.GetString("AWS_ENDPOINT"),
		S3Bucket:           v.GetString("S3_BUCKET"),
		DynamoDBTable:      v.GetString("DYNAMODB_TABLE"),
		CacheExpiry:        time.Duration(v.GetInt("CACHE_EXPIRY_MINUTES")) * time.Minute,
		CacheEnabled:       v.GetBool("CACHE_ENABLED"),
		AuditEnabled:       v.GetBool("AUDIT_ENABLED"),
		HTTPTimeout:        v.GetDuration("HTTP_TIMEOUT"),
		AWSCallTimeout:     v.GetDuration("AWS_CALL_TIMEOUT"),
	}

	if cfg.OpenWeatherAPIKey == "" {
		return nil, errors.New("OPENWEATHER_API_KEY is required")
	}
	if cfg.CacheExpiry <= 0 {
		return nil, errors.New("CACHE_EXPIRY_MINUTES must be positive")
	}

	return cfg, nil
}
