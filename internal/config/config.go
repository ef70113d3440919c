package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything the API needs at startup. It is built once in
// main and handed to the components that need it.
type Config struct {
	Env      string         `yaml:"env"`
	Port     int            `yaml:"port"`
	LogLevel string         `yaml:"log_level"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Bcrypt   BcryptConfig   `yaml:"bcrypt"`
	CORS     CORSConfig     `yaml:"cors"`
	Limiter  LimiterConfig  `yaml:"limiter"`
}

type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	Schema          string        `yaml:"schema"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	AutoMigrate     bool          `yaml:"auto_migrate"`
}

type JWTConfig struct {
	Secret   string        `yaml:"secret"`
	Audience string        `yaml:"audience"`
	Issuer   string        `yaml:"issuer"`
	TTL      time.Duration `yaml:"ttl"`
}

type BcryptConfig struct {
	Cost int `yaml:"cost"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LimiterConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

// DSN returns the connection string for the database. An explicit URL wins
// over the individual parts.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.Username, d.Password, d.Database, d.Port, d.SSLMode)
	if d.Schema != "" {
		dsn += " search_path=" + d.Schema
	}
	return dsn
}

// Name returns the database name for log lines, without credentials.
func (d DatabaseConfig) Name() string {
	if d.URL != "" {
		if u, err := url.Parse(d.URL); err == nil {
			return strings.TrimPrefix(u.Path, "/")
		}
		return ""
	}
	return d.Database
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		Env:      "development",
		Port:     8080,
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            "5432",
			SSLMode:         "disable",
			MaxOpenConns:    100,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
			AutoMigrate:     true,
		},
		JWT: JWTConfig{
			Audience: "http://localhost:8080",
			Issuer:   "http://localhost:8080",
			TTL:      time.Hour,
		},
		Bcrypt: BcryptConfig{Cost: 10},
		CORS: CORSConfig{
			AllowedOrigins: []string{"https://*", "http://*"},
		},
		Limiter: LimiterConfig{
			Enabled: false,
			RPS:     4,
			Burst:   8,
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (or a config.yaml/config.yml found in the working directory when path is
// empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile loads variables from a dotenv file without overriding ones
// already present in the environment.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt secret must be set (JWT_SECRET)"))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, fmt.Errorf("jwt ttl must be positive, got %s", c.JWT.TTL))
	}
	if c.Limiter.Enabled && (c.Limiter.RPS <= 0 || c.Limiter.Burst <= 0) {
		errs = append(errs, errors.New("rate limiter needs positive rps and burst"))
	}
	return errors.Join(errs...)
}

func findConfigFile() string {
	if path := os.Getenv("TASKS_CONFIG"); path != "" {
		return path
	}
	for _, loc := range []string{"config.yaml", "config.yml"} {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Env, "APP_ENV")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.Database.Host, "BLUEPRINT_DB_HOST")
	setString(&cfg.Database.Port, "BLUEPRINT_DB_PORT")
	setString(&cfg.Database.Username, "BLUEPRINT_DB_USERNAME")
	setString(&cfg.Database.Password, "BLUEPRINT_DB_PASSWORD")
	setString(&cfg.Database.Database, "BLUEPRINT_DB_DATABASE")
	setString(&cfg.Database.Schema, "BLUEPRINT_DB_SCHEMA")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.JWT.Audience, "JWT_AUDIENCE")
	setString(&cfg.JWT.Issuer, "JWT_ISSUER")

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORS.AllowedOrigins = origins
	}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	collect(setInt(&cfg.Port, "PORT"))
	collect(setInt(&cfg.Database.MaxOpenConns, "DB_MAX_OPEN_CONNS"))
	collect(setInt(&cfg.Database.MaxIdleConns, "DB_MAX_IDLE_CONNS"))
	collect(setDuration(&cfg.Database.ConnMaxLifetime, "DB_CONN_MAX_LIFETIME"))
	collect(setBool(&cfg.Database.AutoMigrate, "DB_AUTO_MIGRATE"))
	collect(setDuration(&cfg.JWT.TTL, "JWT_TTL"))
	collect(setInt(&cfg.Bcrypt.Cost, "BCRYPT_COST"))
	collect(setBool(&cfg.Limiter.Enabled, "RATE_LIMIT_ENABLED"))
	collect(setFloat(&cfg.Limiter.RPS, "RATE_LIMIT_RPS"))
	collect(setInt(&cfg.Limiter.Burst, "RATE_LIMIT_BURST"))
	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = f
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = b
	return nil
}

// setDuration accepts Go durations ("15m") and plain seconds ("900").
func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(secs) * time.Second
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}
