package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Email     EmailConfig
	Frontend  FrontendConfig
	Alerts    AlertsConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        int
	ResetExpiryMinutes int
}

type EmailConfig struct {
	SendGridAPIKey string
	FromAddress    string
	FromName       string
}

type FrontendConfig struct {
	BaseURL string
}

// AlertsConfig tunes the maintenance alert engine. Window values are the
// trailing number of days a closed driver assignment still counts as recent.
type AlertsConfig struct {
	DefaultWindowDays int
	UnlockWindowDays  int
	DedupFailOpen     bool
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	viper.SetDefault("JWT_EXPIRY_HOURS", 8)
	viper.SetDefault("JWT_RESET_EXPIRY_MINUTES", 15)
	viper.SetDefault("ALERT_DEFAULT_WINDOW_DAYS", 30)
	viper.SetDefault("ALERT_UNLOCK_WINDOW_DAYS", 90)
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:8080")
	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 20.0)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 40)

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        viper.GetInt("JWT_EXPIRY_HOURS"),
			ResetExpiryMinutes: viper.GetInt("JWT_RESET_EXPIRY_MINUTES"),
		},
		Email: EmailConfig{
			SendGridAPIKey: viper.GetString("SENDGRID_API_KEY"),
			FromAddress:    viper.GetString("EMAIL_FROM_ADDRESS"),
			FromName:       viper.GetString("EMAIL_FROM_NAME"),
		},
		Frontend: FrontendConfig{
			BaseURL: viper.GetString("FRONTEND_BASE_URL"),
		},
		Alerts: AlertsConfig{
			DefaultWindowDays: viper.GetInt("ALERT_DEFAULT_WINDOW_DAYS"),
			UnlockWindowDays:  viper.GetInt("ALERT_UNLOCK_WINDOW_DAYS"),
			DedupFailOpen:     viper.GetBool("ALERT_DEDUP_FAIL_OPEN"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
