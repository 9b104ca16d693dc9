package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port             string        `yaml:"port"`
	GinMode          string        `yaml:"gin_mode"`
	DBDriver         string        `yaml:"db_driver"`
	DBDSN            string        `yaml:"db_dsn"`
	LogLevel         string        `yaml:"log_level"`
	LogFormat        string        `yaml:"log_format"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	RateLimitRPS     float64       `yaml:"rate_limit_rps"`
	RateLimitBurst   int           `yaml:"rate_limit_burst"`
	CORSOrigins      []string      `yaml:"cors_origins"`
	StrictTableClaim bool          `yaml:"strict_table_claim"`
}

func Default() Config {
	return Config{
		Port:             "8080",
		GinMode:          "debug",
		DBDriver:         "sqlite",
		DBDSN:            "restaurant.db",
		LogLevel:         "info",
		LogFormat:        "text",
		RequestTimeout:   10 * time.Second,
		RateLimitRPS:     50,
		RateLimitBurst:   100,
		CORSOrigins:      []string{"*"},
		StrictTableClaim: true,
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables. A missing .env is fine.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("PORT", &cfg.Port)
	setString("GIN_MODE", &cfg.GinMode)
	setString("DB_DRIVER", &cfg.DBDriver)
	setString("DB_DSN", &cfg.DBDSN)
	setString("LOG_LEVEL", &cfg.LogLevel)
	setString("LOG_FORMAT", &cfg.LogFormat)

	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimitRPS = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_BURST: %w", err)
		}
		cfg.RateLimitBurst = n
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSOrigins = origins
	}
	if v := os.Getenv("STRICT_TABLE_CLAIM"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("STRICT_TABLE_CLAIM: %w", err)
		}
		cfg.StrictTableClaim = b
	}
	return nil
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	return nil
}
