package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads the YAML file at path, applies APP_* environment overrides and validates the result.
// Secrets are bound explicitly so they resolve even when absent from the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	setDefaults(v)
	if err := bindSecrets(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "boxscore-tracker")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.shutdown_timeout", "10s")

	v.SetDefault("storage.driver", DriverMemory)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 5)
	v.SetDefault("postgres.min_conns", 0)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)
	v.SetDefault("postgres.migrate", true)

	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.key_prefix", "boxscore:")

	v.SetDefault("sqlite.path", "data/boxscore.db")

	v.SetDefault("analysis.enabled", false)
	v.SetDefault("analysis.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("analysis.model", "gemini-2.0-flash")
	v.SetDefault("analysis.timeout", "30s")

	v.SetDefault("live.websocket", true)
	v.SetDefault("live.stream", false)
	v.SetDefault("live.stream_prefix", "boxscore")
}

// bindSecrets accepts the canonical APP_* name first, then the conventional fallbacks.
func bindSecrets(v *viper.Viper) error {
	binds := map[string][]string{
		"postgres.user":     {"APP_POSTGRES_USER", "POSTGRES_USER", "DB_USER"},
		"postgres.password": {"APP_POSTGRES_PASSWORD", "POSTGRES_PASSWORD", "DB_PASSWORD"},
		"postgres.db":       {"APP_POSTGRES_DB", "POSTGRES_DB", "DB_NAME"},
		"redis.url":         {"APP_REDIS_URL", "REDIS_URL"},
		"analysis.api_key":  {"APP_ANALYSIS_API_KEY", "GEMINI_API_KEY"},
	}
	for key, envs := range binds {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

// Validate runs struct tags and then the driver-specific requirements, aggregating everything.
func (c *Config) Validate() error {
	var errs []error
	if err := validator.New().Struct(c); err != nil {
		errs = append(errs, fmt.Errorf("config validation error: %w", err))
	}

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Postgres.User == "" || c.Postgres.Password == "" || c.Postgres.DBName == "" {
			errs = append(errs, errors.New("postgres driver requires APP_POSTGRES_USER, APP_POSTGRES_PASSWORD and APP_POSTGRES_DB"))
		}
		if c.Postgres.MinConns > c.Postgres.MaxConns {
			errs = append(errs, errors.New("postgres.min_conns must not exceed postgres.max_conns"))
		}
	case DriverRedis:
		if strings.TrimSpace(c.Redis.URL) == "" {
			errs = append(errs, errors.New("redis driver requires redis.url"))
		}
	case DriverSQLite:
		if strings.TrimSpace(c.SQLite.Path) == "" {
			errs = append(errs, errors.New("sqlite driver requires sqlite.path"))
		}
	}
	if c.Live.Stream && strings.TrimSpace(c.Redis.URL) == "" {
		errs = append(errs, errors.New("live.stream requires redis.url"))
	}
	if c.Analysis.Enabled && c.Analysis.APIKey == "" {
		errs = append(errs, errors.New("analysis.enabled requires APP_ANALYSIS_API_KEY"))
	}
	return errors.Join(errs...)
}
