package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"delitrack/internal/infrastructure/validation"
)

const (
	DatasetSourceEmbedded = "embedded"
	DatasetSourceFile     = "file"
	DatasetSourceMySQL    = "mysql"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Log       LogConfig
	Dataset   DatasetConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port int `validate:"gt=0,lte=65535"`
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level    string
	Encoding string `validate:"oneof=json console"`
}

type DatasetConfig struct {
	Source string `validate:"oneof=embedded file mysql"`
	Path   string `validate:"required_if=Source file"`
}

type TelemetryConfig struct {
	PositionInterval time.Duration `validate:"gt=0"`
	ProgressInterval time.Duration `validate:"gt=0"`
	MaxDrift         float64       `validate:"gte=0"`
	MaxProgressStep  float64       `validate:"gte=0"`
	StartProgress    float64       `validate:"gte=0,lte=100"`
	StartLat         float64
	StartLng         float64
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "delitrack")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "delitrack")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 5)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 2)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_ENCODING", "json")
	viper.SetDefault("DATASET_SOURCE", DatasetSourceEmbedded)
	viper.SetDefault("DATASET_PATH", "")
	viper.SetDefault("TELEMETRY_POSITION_INTERVAL", "3s")
	viper.SetDefault("TELEMETRY_PROGRESS_INTERVAL", "5s")
	viper.SetDefault("TELEMETRY_MAX_DRIFT", 0.0005)
	viper.SetDefault("TELEMETRY_MAX_PROGRESS_STEP", 2.0)
	viper.SetDefault("TELEMETRY_START_PROGRESS", 75.0)
	viper.SetDefault("TELEMETRY_START_LAT", 37.7749)
	viper.SetDefault("TELEMETRY_START_LNG", -122.4194)

	connMaxLifetime, err := parseDuration("DB_CONN_MAX_LIFETIME")
	if err != nil {
		return nil, err
	}
	positionInterval, err := parseDuration("TELEMETRY_POSITION_INTERVAL")
	if err != nil {
		return nil, err
	}
	progressInterval, err := parseDuration("TELEMETRY_PROGRESS_INTERVAL")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level:    viper.GetString("LOG_LEVEL"),
			Encoding: viper.GetString("LOG_ENCODING"),
		},
		Dataset: DatasetConfig{
			Source: viper.GetString("DATASET_SOURCE"),
			Path:   viper.GetString("DATASET_PATH"),
		},
		Telemetry: TelemetryConfig{
			PositionInterval: positionInterval,
			ProgressInterval: progressInterval,
			MaxDrift:         viper.GetFloat64("TELEMETRY_MAX_DRIFT"),
			MaxProgressStep:  viper.GetFloat64("TELEMETRY_MAX_PROGRESS_STEP"),
			StartProgress:    viper.GetFloat64("TELEMETRY_START_PROGRESS"),
			StartLat:         viper.GetFloat64("TELEMETRY_START_LAT"),
			StartLng:         viper.GetFloat64("TELEMETRY_START_LNG"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	v := validation.New()
	sections := []struct {
		name string
		obj  any
	}{
		{"server", c.Server},
		{"log", c.Log},
		{"dataset", c.Dataset},
		{"telemetry", c.Telemetry},
	}
	for _, s := range sections {
		if err := validation.Struct(v, s.obj, "invalid "+s.name+" config"); err != nil {
			return err
		}
	}
	return nil
}

func parseDuration(key string) (time.Duration, error) {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}
