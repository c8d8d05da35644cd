package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisSelectionDB int    `mapstructure:"REDIS_SELECTION_DB"`
	RedisQueueDB     int    `mapstructure:"REDIS_QUEUE_DB"`

	// Booking rules.
	Timezone     string  `mapstructure:"TIMEZONE"`
	DefaultPrice float64 `mapstructure:"DEFAULT_PRICE"`
	Currency     string  `mapstructure:"CURRENCY"`

	// Administrator identity.
	AdminUID          string `mapstructure:"ADMIN_UID"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`
	AdminEmail        string `mapstructure:"ADMIN_EMAIL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	SelfServiceTTL    int    `mapstructure:"SELF_SERVICE_TOKEN_TTL_HOURS"`
	PublicBaseURL     string `mapstructure:"PUBLIC_BASE_URL"`

	// Firebase (auth + cloud messaging).
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FCMAdminTopic           string `mapstructure:"FCM_ADMIN_TOPIC"`

	// EmailJS transactional email.
	EmailJSServiceID       string `mapstructure:"EMAILJS_SERVICE_ID"`
	EmailJSPublicKey       string `mapstructure:"EMAILJS_PUBLIC_KEY"`
	EmailJSPrivateKey      string `mapstructure:"EMAILJS_PRIVATE_KEY"`
	EmailJSBookingTemplate string `mapstructure:"EMAILJS_BOOKING_TEMPLATE"`
	EmailJSConfirmTemplate string `mapstructure:"EMAILJS_CONFIRM_TEMPLATE"`

	StripeKey string `mapstructure:"STRIPE_KEY"`
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
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017/?replicaSet=rs0")
	viper.SetDefault("DATABASE_NAME", "realtalk")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SELECTION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("TIMEZONE", "Asia/Seoul")
	viper.SetDefault("DEFAULT_PRICE", 2)
	viper.SetDefault("CURRENCY", "usd")
	viper.SetDefault("ADMIN_UID", "")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("ADMIN_EMAIL", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("SELF_SERVICE_TOKEN_TTL_HOURS", 24*60)
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:5173")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")
	viper.SetDefault("FCM_ADMIN_TOPIC", "admin-bookings")
	viper.SetDefault("EMAILJS_SERVICE_ID", "")
	viper.SetDefault("EMAILJS_PUBLIC_KEY", "")
	viper.SetDefault("EMAILJS_PRIVATE_KEY", "")
	viper.SetDefault("EMAILJS_BOOKING_TEMPLATE", "")
	viper.SetDefault("EMAILJS_CONFIRM_TEMPLATE", "")
	viper.SetDefault("STRIPE_KEY", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location returns the service's reference timezone. Falls back to UTC when
// the configured zone cannot be loaded.
func Location() *time.Location {
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		log.Printf("unknown TIMEZONE %q, falling back to UTC", AppConfig.Timezone)
		return time.UTC
	}
	return loc
}

// SelfServiceTokenTTL is how long a requester's reservation link stays valid.
func SelfServiceTokenTTL() time.Duration {
	return time.Duration(AppConfig.SelfServiceTTL) * time.Hour
}
