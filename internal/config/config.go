package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"` // sqlite, postgres
		DSN      string `yaml:"url"`
		ReadOnly bool   `yaml:"read_only"`
	} `yaml:"database"`

	Assets struct {
		Root          string `yaml:"root"`
		PdfDir        string `yaml:"pdf_dir"`
		WebpDir       string `yaml:"webp_dir"`
		LegacyWebpDir string `yaml:"legacy_webp_dir"`
		BottleDir     string `yaml:"bottle_dir"`
	} `yaml:"assets"`

	Upload struct {
		MaxSize            int64 `yaml:"max_size"`             // bytes per request
		BottleMaxDimension int   `yaml:"bottle_max_dimension"` // px, 0 disables downscaling
		ImageQuality       int   `yaml:"image_quality"`        // JPEG quality (1-100)
	} `yaml:"upload"`

	QR struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"qr"`
}

var AppConfig *Config

// Defaults mirrors the layout the catalog has always shipped with.
func Defaults() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080
	cfg.Server.Env = "development"

	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = filepath.Join("instance", "vines.db")

	cfg.Assets.Root = "."
	cfg.Assets.PdfDir = "pdfs"
	cfg.Assets.WebpDir = "webp"
	cfg.Assets.LegacyWebpDir = "webps"
	cfg.Assets.BottleDir = "bottles"

	cfg.Upload.MaxSize = 32 << 20
	cfg.Upload.BottleMaxDimension = 1600
	cfg.Upload.ImageQuality = 85

	cfg.QR.BaseURL = "https://vinelink.lavroovich.fun/"
	return &cfg
}

// Load reads defaults, then the YAML file at path (if it exists), then environment overrides.
// A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		} else {
			log.Printf("ignoring invalid port %q: %v", port, err)
		}
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("ASSETS_ROOT"); v != "" {
		cfg.Assets.Root = v
	}
	if v := os.Getenv("QR_BASE_URL"); v != "" {
		cfg.QR.BaseURL = v
	}

	// Serverless deployments ship the database file inside a read-only bundle.
	if os.Getenv("VERCEL") != "" {
		cfg.Database.ReadOnly = true
		if os.Getenv("SERVER_ENV") == "" {
			cfg.Server.Env = "vercel"
		}
	}
	if v := os.Getenv("WINELINK_READ_ONLY"); v != "" {
		cfg.Database.ReadOnly = isTruthy(v)
	}
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database url is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.QR.BaseURL != "" && !strings.HasSuffix(c.QR.BaseURL, "/") {
		c.QR.BaseURL += "/"
	}
	return nil
}

// Address is the listen address for the HTTP server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// AssetPath joins a configured asset directory onto the assets root.
func (c *Config) AssetPath(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.Assets.Root, dir)
}

// LoadConfig reads .env, then the config file at path, falling back to
// CONFIG_PATH and config/config.yaml, then the environment. The result is
// kept in AppConfig.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = filepath.Join("config", "config.yaml")
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	AppConfig = cfg
	return cfg, nil
}
