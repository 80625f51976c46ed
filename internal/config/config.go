package config

import (
	"fmt"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"time"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"

	ExportDrive = "drive"
	ExportGCS   = "gcs"
	ExportDir   = "dir"
)

// Config holds the storefront configuration.
type Config struct {
	// ISO 4217 code used to display prices
	Currency string `yaml:"currency"`

	Store   StoreConfig   `yaml:"store"`
	Export  ExportConfig  `yaml:"export"`
	Catalog CatalogConfig `yaml:"catalog"`
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig selects the persistent key/value backend of the cart.
type StoreConfig struct {
	Driver    string `yaml:"driver"` // memory, sqlite, postgres, redis
	Path      string `yaml:"path"`   // sqlite file
	DSN       string `yaml:"dsn"`    // postgres connection string
	RedisAddr string `yaml:"redis_addr"`
	KeyPrefix string `yaml:"key_prefix"`
}

// ExportConfig configures where placed orders are backed up.
type ExportConfig struct {
	Target  string `yaml:"target"` // drive, gcs, dir
	Timeout string `yaml:"timeout"`

	// dir
	Dir string `yaml:"dir"`

	// gcs
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`

	// drive
	FolderID        string `yaml:"folder_id"`
	CredentialsFile string `yaml:"credentials_file"` // OAuth client secret JSON
	TokenFile       string `yaml:"token_file"`
}

type CatalogConfig struct {
	Path string `yaml:"path"` // empty means the built-in catalog
}

type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	dataDir := defaultDataDir()

	return &Config{
		Currency: "INR",
		Store: StoreConfig{
			Driver: DriverSQLite,
			Path:   filepath.Join(dataDir, "cart.db"),
		},
		Export: ExportConfig{
			Target:    ExportDir,
			Timeout:   "2m",
			Dir:       filepath.Join(dataDir, "orders"),
			TokenFile: filepath.Join(dataDir, "token.json"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path. A missing file yields defaults.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	overrides := []struct {
		env    string
		target *string
	}{
		{"STOREFRONT_CURRENCY", &c.Currency},
		{"STOREFRONT_STORE_DRIVER", &c.Store.Driver},
		{"STOREFRONT_STORE_PATH", &c.Store.Path},
		{"STOREFRONT_STORE_DSN", &c.Store.DSN},
		{"STOREFRONT_REDIS_ADDR", &c.Store.RedisAddr},
		{"STOREFRONT_KEY_PREFIX", &c.Store.KeyPrefix},
		{"STOREFRONT_EXPORT_TARGET", &c.Export.Target},
		{"STOREFRONT_EXPORT_DIR", &c.Export.Dir},
		{"STOREFRONT_GCS_BUCKET", &c.Export.Bucket},
		{"STOREFRONT_DRIVE_FOLDER_ID", &c.Export.FolderID},
		{"STOREFRONT_DRIVE_CREDENTIALS", &c.Export.CredentialsFile},
		{"STOREFRONT_LOG_LEVEL", &c.Logging.Level},
	}

	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}

	if c.Store.DSN == "" {
		c.Store.DSN = os.Getenv("DATABASE_URL")
	}
}

// Validate checks the fields each selected driver and target need.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the postgres driver")
		}
	case DriverRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store.redis_addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("%w %q", domain.ErrUnknownDriver, c.Store.Driver)
	}

	switch c.Export.Target {
	case ExportDir:
		if c.Export.Dir == "" {
			return fmt.Errorf("export.dir is required for the dir target")
		}
	case ExportGCS:
		if c.Export.Bucket == "" {
			return fmt.Errorf("export.bucket is required for the gcs target")
		}
	case ExportDrive:
		if c.Export.CredentialsFile == "" {
			return fmt.Errorf("export.credentials_file is required for the drive target")
		}
	default:
		return fmt.Errorf("unknown export target %q", c.Export.Target)
	}

	if _, err := time.ParseDuration(c.Export.Timeout); c.Export.Timeout != "" && err != nil {
		return fmt.Errorf("export.timeout: %w", err)
	}

	return nil
}

// GetExportTimeout returns the export timeout, 2 minutes when unset.
func (c *Config) GetExportTimeout() time.Duration {
	d, err := time.ParseDuration(c.Export.Timeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "storefront")
	}
	return ".storefront"
}
