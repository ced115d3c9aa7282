package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort string `mapstructure:"APP_PORT"`
	Env     string `mapstructure:"ENV"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Service auth.
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Google Maps geocoding.
	GoogleAPIKey   string `mapstructure:"GOOGLE_API_KEY"`
	GeoRegionBias  string `mapstructure:"GEO_REGION_BIAS"`
	GeoQuerySuffix string `mapstructure:"GEO_QUERY_SUFFIX"`

	// Pricing sheet export (xlsx download URL).
	PricingSheetURL string `mapstructure:"PRICING_SHEET_URL"`

	// Property management system API.
	PMSBaseURL string `mapstructure:"PMS_BASE_URL"`
	PMSAPIKey  string `mapstructure:"PMS_API_KEY"`

	// LeadSquared CRM.
	CRMBaseURL   string `mapstructure:"CRM_BASE_URL"`
	CRMAccessKey string `mapstructure:"CRM_ACCESS_KEY"`
	CRMSecretKey string `mapstructure:"CRM_SECRET_KEY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "stayline")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("GOOGLE_API_KEY", "")
	viper.SetDefault("GEO_REGION_BIAS", "in")
	viper.SetDefault("GEO_QUERY_SUFFIX", ", Chennai, India")
	viper.SetDefault("PRICING_SHEET_URL", "")
	viper.SetDefault("PMS_BASE_URL", "")
	viper.SetDefault("PMS_API_KEY", "")
	viper.SetDefault("CRM_BASE_URL", "https://api-in21.leadsquared.com/v2/LeadManagement.svc")
	viper.SetDefault("CRM_ACCESS_KEY", "")
	viper.SetDefault("CRM_SECRET_KEY", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
