// Package config loads pulse.yaml. A missing file yields defaults; a few
// environment variables override the file for container deployments.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Sharon-codes/UIDAI-Hackathon/dataset"
)

// Environment overrides.
const (
	EnvAddr    = "PULSE_ADDR"
	EnvDataset = "PULSE_DATASET"
	EnvTopN    = "PULSE_TOP_N"
)

// Config is the root of pulse.yaml.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatasetConfig locates the district dataset.
type DatasetConfig struct {
	Path        string        `yaml:"path"`
	Format      string        `yaml:"format"`
	Table       string        `yaml:"table"`
	CleanStates bool          `yaml:"clean_states"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
}

// DashboardConfig tunes the rankings.
type DashboardConfig struct {
	TopN int `yaml:"top_n"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Dataset: DatasetConfig{
			Path:       "data.js",
			RetryDelay: dataset.DefaultRetryDelay,
		},
		Dashboard: DashboardConfig{TopN: 10},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path or a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return cfg, fmt.Errorf("read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("unmarshal %s: %w", path, err)
			}
		}
	}

	cfg.Server.Addr = getEnvWithDefault(EnvAddr, cfg.Server.Addr)
	cfg.Dataset.Path = getEnvWithDefault(EnvDataset, cfg.Dataset.Path)
	cfg.Dashboard.TopN = getEnvAsInt(EnvTopN, cfg.Dashboard.TopN)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot start with.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Server.Addr) == "" {
		problems = append(problems, "server.addr is empty")
	}
	if c.Dashboard.TopN <= 0 {
		problems = append(problems, fmt.Sprintf("dashboard.top_n must be positive, got %d", c.Dashboard.TopN))
	}
	if c.Dataset.RetryDelay < 0 {
		problems = append(problems, "dataset.retry_delay is negative")
	}
	if c.Server.ShutdownTimeout < 0 {
		problems = append(problems, "server.shutdown_timeout is negative")
	}
	if f := c.Dataset.Format; f != "" && f != dataset.FormatCSV && f != dataset.FormatJSON && f != dataset.FormatSQLite {
		problems = append(problems, fmt.Sprintf("dataset.format %q not one of csv, json, sqlite", f))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Source converts the dataset block into a loader source.
func (c Config) Source() dataset.Source {
	return dataset.Source{
		Path:        c.Dataset.Path,
		Format:      c.Dataset.Format,
		Table:       c.Dataset.Table,
		CleanStates: c.Dataset.CleanStates,
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
