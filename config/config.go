package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseURL        string        `yaml:"base_url" validate:"required,url"`
	InventoryURL   string        `yaml:"inventory_url" validate:"required,url"`
	Username       string        `yaml:"username" validate:"required"`
	Password       string        `yaml:"password" validate:"required"`
	Headless       bool          `yaml:"headless"`
	MaxWorkers     int           `yaml:"max_workers" validate:"min=1"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
	StableTimeout  time.Duration `yaml:"stable_timeout" validate:"gt=0"`
	PollInterval   time.Duration `yaml:"poll_interval" validate:"gt=0"`
	SettleTime     time.Duration `yaml:"settle_time" validate:"gte=0"`
	CSVPath        string        `yaml:"csv_path"`
	DumpDir        string        `yaml:"dump_dir"`
	DBEnabled      bool          `yaml:"db_enabled"`
	DBHost         string        `yaml:"db_host" validate:"required_if=DBEnabled true"`
	DBPort         int           `yaml:"db_port" validate:"min=0,max=65535"`
	DBUser         string        `yaml:"db_user"`
	DBPassword     string        `yaml:"db_password"`
	DBName         string        `yaml:"db_name" validate:"required_if=DBEnabled true"`
	DBSSLMode      string        `yaml:"db_sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "https://www.saucedemo.com/",
		InventoryURL:   "https://www.saucedemo.com/inventory.html",
		Username:       "standard_user",
		Password:       "secret_sauce",
		Headless:       true,
		MaxWorkers:     2,
		RequestTimeout: 30 * time.Second,
		StableTimeout:  10 * time.Second,
		PollInterval:   100 * time.Millisecond,
		SettleTime:     500 * time.Millisecond,
		CSVPath:        "output/sort_checks.csv",
		DumpDir:        "output/pages",
		DBEnabled:      false,
		DBHost:         "localhost",
		DBPort:         5433,
		DBUser:         "postgres",
		DBPassword:     "postgres",
		DBName:         "saucedemo_e2e",
		DBSSLMode:      "disable",
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped when
// path is empty) and then with SAUCE_* environment variables.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("could not parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DSN builds the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"SAUCE_BASE_URL":      &c.BaseURL,
		"SAUCE_INVENTORY_URL": &c.InventoryURL,
		"SAUCE_USERNAME":      &c.Username,
		"SAUCE_PASSWORD":      &c.Password,
		"SAUCE_CSV_PATH":      &c.CSVPath,
		"SAUCE_DUMP_DIR":      &c.DumpDir,
		"SAUCE_DB_HOST":       &c.DBHost,
		"SAUCE_DB_USER":       &c.DBUser,
		"SAUCE_DB_PASSWORD":   &c.DBPassword,
		"SAUCE_DB_NAME":       &c.DBName,
		"SAUCE_DB_SSLMODE":    &c.DBSSLMode,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"SAUCE_HEADLESS":   &c.Headless,
		"SAUCE_DB_ENABLED": &c.DBEnabled,
	}
	for key, dst := range bools {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = b
	}

	ints := map[string]*int{
		"SAUCE_MAX_WORKERS": &c.MaxWorkers,
		"SAUCE_DB_PORT":     &c.DBPort,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}

	durations := map[string]*time.Duration{
		"SAUCE_REQUEST_TIMEOUT": &c.RequestTimeout,
		"SAUCE_STABLE_TIMEOUT":  &c.StableTimeout,
		"SAUCE_POLL_INTERVAL":   &c.PollInterval,
		"SAUCE_SETTLE_TIME":     &c.SettleTime,
	}
	for key, dst := range durations {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}
	return nil
}
