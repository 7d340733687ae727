package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// External collaborators.
	BackendAPIURL string `mapstructure:"BACKEND_API_URL"`
	GeocoderURL   string `mapstructure:"GEOCODER_URL"`
	StripeKey     string `mapstructure:"STRIPE_KEY"`
	CloudinaryURL string `mapstructure:"CLOUDINARY_URL"`

	// Firebase service-account key for push notifications. Empty disables
	// the reminder push channel.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Service area and order policy.
	ShopLatitude        float64 `mapstructure:"SHOP_LATITUDE"`
	ShopLongitude       float64 `mapstructure:"SHOP_LONGITUDE"`
	ServiceRadiusMeters float64 `mapstructure:"SERVICE_RADIUS_METERS"`
	MinOrderAmount      float64 `mapstructure:"MIN_ORDER_AMOUNT"`
	PickupMinLeadHours  int     `mapstructure:"PICKUP_MIN_LEAD_HOURS"`
	PickupMaxWindowDays int     `mapstructure:"PICKUP_MAX_WINDOW_DAYS"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB  int    `mapstructure:"REDIS_SESSION_DB"`
	RedisReminderDB int    `mapstructure:"REDIS_REMINDER_DB"`
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
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("BACKEND_API_URL", "http://localhost:5000")
	viper.SetDefault("GEOCODER_URL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("CLOUDINARY_URL", "")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	// Shop reference point (Bangalore) and a 30 km delivery radius.
	viper.SetDefault("SHOP_LATITUDE", 12.9715999)
	viper.SetDefault("SHOP_LONGITUDE", 77.594566)
	viper.SetDefault("SERVICE_RADIUS_METERS", 30000.0)
	viper.SetDefault("MIN_ORDER_AMOUNT", 200.0)
	viper.SetDefault("PICKUP_MIN_LEAD_HOURS", 48)
	viper.SetDefault("PICKUP_MAX_WINDOW_DAYS", 7)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_REMINDER_DB", 2)

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
