package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv     string           `mapstructure:"app_env" validate:"required,oneof=development staging production test"`
	Port       string           `mapstructure:"port" validate:"required"`
	Timezone   string           `mapstructure:"app_timezone" validate:"required"`
	Database   DatabaseConfig   `mapstructure:",squash"`
	Redis      RedisConfig      `mapstructure:",squash"`
	Kafka      KafkaConfig      `mapstructure:",squash"`
	Security   SecurityConfig   `mapstructure:",squash"`
	Attendance AttendanceConfig `mapstructure:",squash"`
	Tracing    TracingConfig    `mapstructure:",squash"`
}

type DatabaseConfig struct {
	Host       string `mapstructure:"db_host" validate:"required"`
	Port       string `mapstructure:"db_port" validate:"required"`
	User       string `mapstructure:"db_user" validate:"required"`
	Password   string `mapstructure:"db_password"`
	Name       string `mapstructure:"db_name" validate:"required"`
	SSLMode    string `mapstructure:"db_sslmode" validate:"required"`
	MaxRetries int    `mapstructure:"db_max_retries" validate:"min=1"`
}

// DSN is the key/value form understood by both gorm's postgres driver and pgx stdlib.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr string `mapstructure:"redis_addr"`
}

type KafkaConfig struct {
	Broker             string        `mapstructure:"kafka_broker"`
	OutboxPollInterval time.Duration `mapstructure:"outbox_poll_interval" validate:"min=0"`
}

type SecurityConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret" validate:"required,min=16"`
	JWTTTL     time.Duration `mapstructure:"jwt_ttl" validate:"required"`
	BCryptCost int           `mapstructure:"bcrypt_cost" validate:"min=4,max=15"`
}

type AttendanceConfig struct {
	FullDayHours    float64 `mapstructure:"attendance_full_day_hours" validate:"gt=0,lte=24"`
	HalfDayMinHours float64 `mapstructure:"attendance_half_day_min_hours" validate:"gt=0"`
	WorkdayStart    string  `mapstructure:"workday_start" validate:"required"`
	WorkdayEnd      string  `mapstructure:"workday_end" validate:"required"`
}

type TracingConfig struct {
	Endpoint    string `mapstructure:"otel_exporter_otlp_endpoint"`
	Insecure    bool   `mapstructure:"otel_exporter_otlp_insecure"`
	ServiceName string `mapstructure:"otel_service_name"`
}

var defaults = map[string]any{
	"app_env":                       "development",
	"port":                          "3000",
	"app_timezone":                  "UTC",
	"db_host":                       "localhost",
	"db_port":                       "5432",
	"db_user":                       "postgres",
	"db_password":                   "",
	"db_name":                       "hrops",
	"db_sslmode":                    "disable",
	"db_max_retries":                5,
	"redis_addr":                    "",
	"kafka_broker":                  "",
	"outbox_poll_interval":          3 * time.Second,
	"jwt_secret":                    "",
	"jwt_ttl":                       7 * 24 * time.Hour,
	"bcrypt_cost":                   10,
	"attendance_full_day_hours":     8.0,
	"attendance_half_day_min_hours": 4.0,
	"workday_start":                 "09:00",
	"workday_end":                   "18:00",
	"otel_exporter_otlp_endpoint":   "",
	"otel_exporter_otlp_insecure":   false,
	"otel_service_name":             "go-hrops",
}

// Load reads .env (if present) and the process environment into Config.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only resolves keys viper already knows about; bind them
	// explicitly so Unmarshal sees env overrides.
	for key := range defaults {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var errs []string
	if c.Attendance.HalfDayMinHours >= c.Attendance.FullDayHours {
		errs = append(errs, "attendance_half_day_min_hours must be lower than attendance_full_day_hours")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("app_timezone: %v", err))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
