package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Database  DatabaseConfig
	Log       LogConfig
	Reminders RemindersConfig
	Export    ExportConfig
	Seed      SeedConfig
}

type DatabaseConfig struct {
	Path          string
	BusyTimeoutMS int
}

type LogConfig struct {
	Level  string
	Format string
}

// RemindersConfig tunes reminder scheduling behaviour.
type RemindersConfig struct {
	FireHour int
}

// ExportConfig controls schedule report export output.
type ExportConfig struct {
	Dir    string
	Format string
}

// SeedConfig toggles evaluation data seeding on startup.
type SeedConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Database = DatabaseConfig{
		Path:          v.GetString("DB_PATH"),
		BusyTimeoutMS: v.GetInt("DB_BUSY_TIMEOUT_MS"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	fireHour := v.GetInt("REMINDER_FIRE_HOUR")
	if fireHour < 0 || fireHour > 23 {
		fireHour = 9
	}
	cfg.Reminders = RemindersConfig{FireHour: fireHour}

	cfg.Export = ExportConfig{
		Dir:    v.GetString("EXPORT_DIR"),
		Format: strings.ToLower(v.GetString("EXPORT_FORMAT")),
	}

	cfg.Seed = SeedConfig{
		Enabled: v.GetBool("SEED_EVALUATION_DATA"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("DB_PATH", "./termtracker.db")
	v.SetDefault("DB_BUSY_TIMEOUT_MS", 5000)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("REMINDER_FIRE_HOUR", 9)

	v.SetDefault("EXPORT_DIR", "./exports")
	v.SetDefault("EXPORT_FORMAT", "csv")

	v.SetDefault("SEED_EVALUATION_DATA", false)
}
