package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	EnvVars EnvVars `json:"env"`
}

// EnvVars holds environment variables read by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port              string        `env:"PORT" envDefault:"8080"`
	CocktailDBBaseURL string        `env:"COCKTAILDB_BASE_URL" envDefault:"https://www.thecocktaildb.com/api/json/v1/1"`
	LookupTimeout     time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"10s"`
	NotificationTTL   time.Duration `env:"NOTIFICATION_TTL" envDefault:"3s"`
	SessionIdleTTL    time.Duration `env:"SESSION_IDLE_TTL" envDefault:"2h" optional:"true"`
	SearchRateLimit   int           `env:"SEARCH_RATE_LIMIT" envDefault:"5" optional:"true"`
	AllowedOrigins    []string      `env:"ALLOWED_ORIGINS" envSeparator:"," optional:"true"`
	LogFile           string        `env:"LOG_FILE" optional:"true"`
	LogMaxSizeMB      int           `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	return checkFieldsRecursive(reflect.ValueOf(c.EnvVars))
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if field.IsZero() {
			return fmt.Errorf("$%s must be set", fieldType.Tag.Get("env"))
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}

// NotificationTTL returns the notification display window, falling back to
// the 3 second default when unset.
func (c *Config) NotificationTTL() time.Duration {
	if c.EnvVars.NotificationTTL <= 0 {
		return 3 * time.Second
	}
	return c.EnvVars.NotificationTTL
}
