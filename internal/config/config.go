// Package config loads the service configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fleetdesk/driver-import/internal/validate"
)

// Config is the full service configuration. Missing keys fall back to
// Default values.
type Config struct {
	ListenAddr   string `yaml:"listen_addr"`
	DatabasePath string `yaml:"database_path"`
	// DateOrder is the locale hint for ambiguous all-numeric dates:
	// "mdy" (default) or "dmy".
	DateOrder string `yaml:"date_order"`
	// OrgID is the organization context attached to committed records.
	OrgID string `yaml:"org_id"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		ListenAddr:   ":8080",
		DatabasePath: "drivers.db",
		DateOrder:    "mdy",
		OrgID:        "default",
	}
}

// Load reads path and overlays it onto Default. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, err := cfg.ParseDateOrder(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseDateOrder maps the date_order key onto the validator's hint.
func (c Config) ParseDateOrder() (validate.DateOrder, error) {
	switch c.DateOrder {
	case "", "mdy":
		return validate.MonthFirst, nil
	case "dmy":
		return validate.DayFirst, nil
	default:
		return validate.MonthFirst, fmt.Errorf("invalid date_order %q (want mdy or dmy)", c.DateOrder)
	}
}
