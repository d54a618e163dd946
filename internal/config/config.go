package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr      string        `env:"SERVER_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// RequestTimeout bounds a single API request, PDF rendering included.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	// Archive database configuration. The archive is disabled when
	// DATABASE_URL is empty.
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"1"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configurations
	BackendCfg BackendConfig `envPrefix:"BACKEND_"`
	AssetsCfg  AssetsConfig  `envPrefix:"ASSETS_"`

	ExportCfg ExportConfig `envPrefix:"EXPORT_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// BackendConfig describes the study/vocabulary API.
type BackendConfig struct {
	HTTPClientConfig
	// MaxUploadSize bounds the file handed to OCR, in bytes.
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"20971520"`
}

// AssetsConfig locates the header logo and the embeddable font. With a
// BaseURL the paths are fetched over HTTP, otherwise they are read from Dir.
type AssetsConfig struct {
	HTTPClientConfig
	Dir         string        `env:"DIR" envDefault:"assets"`
	LogoPath    string        `env:"LOGO_PATH" envDefault:"/logo.png"`
	FontPath    string        `env:"FONT_PATH" envDefault:"/fonts/malgun.ttf"`
	FontAltPath string        `env:"FONT_ALT_PATH" envDefault:"/fonts/MALGUN.TTF"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"1h"`
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	DefaultFilename  string `env:"DEFAULT_FILENAME" envDefault:"document"`
	PageFormat       string `env:"PAGE_FORMAT" envDefault:"A4"`
	NumberParagraphs bool   `env:"NUMBER_PARAGRAPHS" envDefault:"false"`
	// MaxWords bounds the vocabulary sent along with one export request.
	MaxWords int `env:"MAX_WORDS" envDefault:"500"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// ArchiveEnabled reports whether exports are persisted.
func (c *Config) ArchiveEnabled() bool {
	return c.DatabaseURL != ""
}

// LoadConfig parses the -env flag, loads the matching .env file and reads
// the environment.
func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	return Load(*envFlag)
}

// Load reads configuration for the named environment without touching the
// command line flags.
func Load(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

var pageFormats = map[string]bool{"A4": true, "A5": true, "LETTER": true}

func validateConfig(cfg *Config) error {
	var errs []error

	if !cfg.EnableMocks && cfg.BackendCfg.Url == "" {
		errs = append(errs, errors.New("BACKEND_SERVICE_URL is required unless ENABLE_MOCKS is set"))
	}

	if cfg.BackendCfg.MaxUploadSize < 1 {
		errs = append(errs, fmt.Errorf("BACKEND_MAX_UPLOAD_SIZE must be positive, got %d", cfg.BackendCfg.MaxUploadSize))
	}

	if !pageFormats[strings.ToUpper(cfg.ExportCfg.PageFormat)] {
		errs = append(errs, fmt.Errorf("EXPORT_PAGE_FORMAT must be one of A4, A5, LETTER, got %q", cfg.ExportCfg.PageFormat))
	}

	if strings.TrimSpace(cfg.ExportCfg.DefaultFilename) == "" {
		errs = append(errs, errors.New("EXPORT_DEFAULT_FILENAME must not be blank"))
	}

	if cfg.ExportCfg.MaxWords < 0 {
		errs = append(errs, fmt.Errorf("EXPORT_MAX_WORDS must not be negative, got %d", cfg.ExportCfg.MaxWords))
	}

	if cfg.AssetsCfg.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("ASSETS_CACHE_TTL must not be negative, got %s", cfg.AssetsCfg.CacheTTL))
	}

	if cfg.ArchiveEnabled() {
		if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
			errs = append(errs, fmt.Errorf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
		}

		if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
			errs = append(errs, fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
		}
	}

	return errors.Join(errs...)
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
