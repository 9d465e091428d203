// backend-go/internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Storage  StorageConfig
	Webhook  WebhookConfig
	Engine   EngineConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled             bool
	RedisURL            string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	AnalyticsTTLSeconds int
}

// StorageConfig points exports at any S3-compatible bucket.
type StorageConfig struct {
	Enabled   bool
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
}

type WebhookConfig struct {
	Port   string
	Secret string
}

// EngineConfig exposes the analytics thresholds that vary per deployment.
// Zero values fall back to the engine defaults.
type EngineConfig struct {
	WindowDays          int
	LeadTimeDays        int
	SafetyStockDays     int
	ReviewPeriodDays    int
	ForecastHorizonDays int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "storesight")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_ANALYTICS_TTL_SECONDS", 300)
		viper.SetDefault("STORAGE_ENABLED", false)
		viper.SetDefault("STORAGE_BUCKET", "")
		viper.SetDefault("STORAGE_REGION", "us-east-1")
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_PREFIX", "exports")
		viper.SetDefault("WEBHOOK_PORT", "8081")
		viper.SetDefault("WEBHOOK_SECRET", "")
		viper.SetDefault("ENGINE_WINDOW_DAYS", 90)
		viper.SetDefault("ENGINE_LEAD_TIME_DAYS", 14)
		viper.SetDefault("ENGINE_SAFETY_STOCK_DAYS", 7)
		viper.SetDefault("ENGINE_REVIEW_PERIOD_DAYS", 30)
		viper.SetDefault("ENGINE_FORECAST_HORIZON_DAYS", 30)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:             viper.GetBool("CACHE_ENABLED"),
				RedisURL:            viper.GetString("REDIS_URL"),
				RedisHost:           viper.GetString("REDIS_HOST"),
				RedisPort:           viper.GetString("REDIS_PORT"),
				RedisPassword:       viper.GetString("REDIS_PASSWORD"),
				RedisDB:             viper.GetInt("REDIS_DB"),
				AnalyticsTTLSeconds: viper.GetInt("CACHE_ANALYTICS_TTL_SECONDS"),
			},
			Storage: StorageConfig{
				Enabled:   viper.GetBool("STORAGE_ENABLED"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				Region:    viper.GetString("STORAGE_REGION"),
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Prefix:    viper.GetString("STORAGE_PREFIX"),
			},
			Webhook: WebhookConfig{
				Port:   viper.GetString("WEBHOOK_PORT"),
				Secret: viper.GetString("WEBHOOK_SECRET"),
			},
			Engine: EngineConfig{
				WindowDays:          viper.GetInt("ENGINE_WINDOW_DAYS"),
				LeadTimeDays:        viper.GetInt("ENGINE_LEAD_TIME_DAYS"),
				SafetyStockDays:     viper.GetInt("ENGINE_SAFETY_STOCK_DAYS"),
				ReviewPeriodDays:    viper.GetInt("ENGINE_REVIEW_PERIOD_DAYS"),
				ForecastHorizonDays: viper.GetInt("ENGINE_FORECAST_HORIZON_DAYS"),
			},
		}
	})

	return instance
}
