package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Appointment store. When DATABASE_URL is set the Mongo repository is used;
	// otherwise appointments are kept in the single-writer file store.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	StoreFile   string `mapstructure:"STORE_FILE"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisPricingDB int    `mapstructure:"REDIS_PRICING_DB"`
	RedisTaskDB    int    `mapstructure:"REDIS_TASK_DB"`

	// Scheduling rules.
	BusinessOpen       string         `mapstructure:"BUSINESS_OPEN"`  // "08:00"
	BusinessClose      string         `mapstructure:"BUSINESS_CLOSE"` // "18:00"
	SlotMinutes        int            `mapstructure:"SLOT_MINUTES"`
	BookingHorizonDays int            `mapstructure:"BOOKING_HORIZON_DAYS"`
	CrewCapacity       int            `mapstructure:"CREW_CAPACITY"`
	CapacityOverrides  map[string]int `mapstructure:"CAPACITY_OVERRIDES"`

	// SMTP delivery for confirmation/cancellation mail.
	SMTPHost string `mapstructure:"SMTP_HOST"`
	SMTPPort int    `mapstructure:"SMTP_PORT"`
	SMTPUser string `mapstructure:"SMTP_USER"`
	SMTPPass string `mapstructure:"SMTP_PASS"`
	MailFrom string `mapstructure:"MAIL_FROM"`

	// Google Calendar provider (disabled when the credentials file is empty).
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	GoogleCalendarID      string `mapstructure:"GOOGLE_CALENDAR_ID"`

	// CalDAV (Apple-style) provider (disabled when the URL is empty).
	CalDAVURL      string `mapstructure:"CALDAV_URL"`
	CalDAVUser     string `mapstructure:"CALDAV_USER"`
	CalDAVPassword string `mapstructure:"CALDAV_PASSWORD"`

	// Pricing catalog source and cache refresh interval.
	PricingSourceURL      string `mapstructure:"PRICING_SOURCE_URL"`
	PricingRefreshMinutes int    `mapstructure:"PRICING_REFRESH_MINUTES"`

	Timezone          string `mapstructure:"TIMEZONE"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
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
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("STORE_FILE", "data/appointments.json")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_PRICING_DB", 1)
	viper.SetDefault("REDIS_TASK_DB", 2)
	viper.SetDefault("BUSINESS_OPEN", "08:00")
	viper.SetDefault("BUSINESS_CLOSE", "18:00")
	viper.SetDefault("SLOT_MINUTES", 30)
	viper.SetDefault("BOOKING_HORIZON_DAYS", 60)
	viper.SetDefault("CREW_CAPACITY", 1)
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("MAIL_FROM", "bookings@movebook.local")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "")
	viper.SetDefault("GOOGLE_CALENDAR_ID", "primary")
	viper.SetDefault("CALDAV_URL", "")
	viper.SetDefault("PRICING_SOURCE_URL", "")
	viper.SetDefault("PRICING_REFRESH_MINUTES", 30)
	viper.SetDefault("TIMEZONE", "UTC")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)

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

// CapacityFor resolves the crew capacity for a given date and time slot.
// Overrides are matched most-specific first: "date time", then "date",
// falling back to the global default. Capacity varies with the crew roster,
// so callers must never bake in a constant.
func CapacityFor(date, timeOfDay string) int {
	if n, ok := AppConfig.CapacityOverrides[fmt.Sprintf("%s %s", date, timeOfDay)]; ok {
		return n
	}
	if n, ok := AppConfig.CapacityOverrides[date]; ok {
		return n
	}
	return AppConfig.CrewCapacity
}
