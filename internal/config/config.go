package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Config holds the dashboard service configuration.
type Config struct {
	Port string     `yaml:"port"`
	Data DataConfig `yaml:"data"`
	Log  LogConfig  `yaml:"log"`
	HTTP HTTPConfig `yaml:"http"`
}

// DataConfig locates the three input sources.
type DataConfig struct {
	BoundaryPath string `yaml:"boundary_path"`
	WetlandPath  string `yaml:"wetland_path"`
	CasesPath    string `yaml:"cases_path"`

	// When set, case reports are read from Postgres instead of CasesPath.
	CasesDatabaseURL string `yaml:"cases_database_url"`
	CasesTable       string `yaml:"cases_table"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

type HTTPConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps"` // 0 disables limiting
	RateLimitBurst int      `yaml:"rate_limit_burst"`
}

const (
	DefaultPort         = "5050"
	DefaultBoundaryPath = "rwa_adm4_2006_NISR_WGS1984_20181002.shp"
	DefaultWetlandPath  = "Wetlands_and_Swamps_Final.shp"
	DefaultCasesPath    = "malaria_cases.csv"
	DefaultCasesTable   = "malaria.case_reports"
)

var (
	ErrMissingPort         = errors.New("port is required")
	ErrMissingBoundaryPath = errors.New("boundary shapefile path is required")
	ErrMissingWetlandPath  = errors.New("wetland shapefile path is required")
	ErrMissingCaseSource   = errors.New("either a cases CSV path or a cases database URL is required")
)

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Port: DefaultPort,
		Data: DataConfig{
			BoundaryPath: DefaultBoundaryPath,
			WetlandPath:  DefaultWetlandPath,
			CasesPath:    DefaultCasesPath,
			CasesTable:   DefaultCasesTable,
		},
		Log: LogConfig{Level: "info", Format: "json"},
		HTTP: HTTPConfig{
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8050"},
			RateLimitRPS:   20,
			RateLimitBurst: 40,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and finally environment variables.
//
// Environment variables:
//   - PORT: listen port (default: 5050)
//   - CONFIG_FILE: optional YAML overlay
//   - BOUNDARY_PATH, WETLAND_PATH, CASES_PATH: input files
//   - CASES_DATABASE_URL, CASES_TABLE: Postgres case source
//   - LOG_LEVEL, LOG_FORMAT: logger settings
//   - ALLOWED_ORIGINS: comma separated CORS allow-list
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST: request limiter
func Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}

	setString(&c.Port, "PORT")
	setString(&c.Data.BoundaryPath, "BOUNDARY_PATH")
	setString(&c.Data.WetlandPath, "WETLAND_PATH")
	setString(&c.Data.CasesPath, "CASES_PATH")
	setString(&c.Data.CasesDatabaseURL, "CASES_DATABASE_URL")
	setString(&c.Data.CasesTable, "CASES_TABLE")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if v := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.HTTP.AllowedOrigins = origins
	}

	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPS %q: %w", v, err)
		}
		c.HTTP.RateLimitRPS = rps
	}
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_BURST %q: %w", v, err)
		}
		c.HTTP.RateLimitBurst = burst
	}
	return nil
}

// Validate checks that the configuration can start the service.
func (c Config) Validate() error {
	if c.Port == "" {
		return ErrMissingPort
	}
	if c.Data.BoundaryPath == "" {
		return ErrMissingBoundaryPath
	}
	if c.Data.WetlandPath == "" {
		return ErrMissingWetlandPath
	}
	if c.Data.CasesPath == "" && c.Data.CasesDatabaseURL == "" {
		return ErrMissingCaseSource
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	if c.HTTP.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit must not be negative (got %v)", c.HTTP.RateLimitRPS)
	}
	return nil
}

// UsesDatabaseCases reports whether case reports come from Postgres.
func (c Config) UsesDatabaseCases() bool {
	return c.Data.CasesDatabaseURL != ""
}
