package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Port               string `mapstructure:"PORT"`
	DBConn             string `mapstructure:"DB_CONN"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	JWTSecret          string `mapstructure:"JWT_SECRET"` // Empty disables bearer token checks
	Locale             string `mapstructure:"LOCALE"`
	Currency           string `mapstructure:"CURRENCY"`
	UrgentDays         int    `mapstructure:"URGENT_DAYS"`
	UpcomingDays       int    `mapstructure:"UPCOMING_DAYS"`
	ActivityWindowDays int    `mapstructure:"ACTIVITY_WINDOW_DAYS"`
	ReminderSchedule   string `mapstructure:"REMINDER_SCHEDULE"` // Empty disables reminders
	ReminderEmail      string `mapstructure:"REMINDER_EMAIL"`
	ReminderName       string `mapstructure:"REMINDER_NAME"`
	SMTPHost           string `mapstructure:"SMTP_HOST"`
	SMTPPort           string `mapstructure:"SMTP_PORT"`
	SMTPUsername       string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword       string `mapstructure:"SMTP_PASSWORD"`
	SenderEmail        string `mapstructure:"SENDER_EMAIL"`
}

var keys = []string{
	"PORT", "DB_CONN", "LOG_LEVEL", "JWT_SECRET", "LOCALE", "CURRENCY",
	"URGENT_DAYS", "UPCOMING_DAYS", "ACTIVITY_WINDOW_DAYS",
	"REMINDER_SCHEDULE", "REMINDER_EMAIL", "REMINDER_NAME",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SENDER_EMAIL",
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DB_CONN", "host=localhost port=5436 user=test password=test dbname=cards sslmode=disable")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("LOCALE", "en-US")
	viper.SetDefault("CURRENCY", "USD")
	viper.SetDefault("URGENT_DAYS", 3)
	viper.SetDefault("UPCOMING_DAYS", 14)
	viper.SetDefault("ACTIVITY_WINDOW_DAYS", 30)
	viper.SetDefault("REMINDER_SCHEDULE", "0 9 * * *") // Every day at 09:00
	viper.SetDefault("REMINDER_NAME", "there")
	viper.SetDefault("SMTP_PORT", "587")
	viper.AutomaticEnv()

	// Bind explicitly so keys without defaults still reach Unmarshal
	for _, k := range keys {
		_ = viper.BindEnv(k)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.UrgentDays < 0 {
		return nil, fmt.Errorf("URGENT_DAYS must not be negative, got %d", cfg.UrgentDays)
	}
	if cfg.UpcomingDays < cfg.UrgentDays {
		return nil, fmt.Errorf("UPCOMING_DAYS (%d) must not be less than URGENT_DAYS (%d)", cfg.UpcomingDays, cfg.UrgentDays)
	}
	if cfg.ActivityWindowDays <= 0 {
		return nil, fmt.Errorf("ACTIVITY_WINDOW_DAYS must be positive, got %d", cfg.ActivityWindowDays)
	}
	if cfg.ReminderSchedule != "" && cfg.ReminderEmail != "" {
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("SMTP_HOST is required when REMINDER_EMAIL is set")
		}
		if cfg.SenderEmail == "" {
			return nil, fmt.Errorf("SENDER_EMAIL is required when REMINDER_EMAIL is set")
		}
	}

	return &cfg, nil
}

// RemindersEnabled reports whether the reminder job has a schedule and a recipient
func (c *Config) RemindersEnabled() bool {
	return c.ReminderSchedule != "" && c.ReminderEmail != ""
}
