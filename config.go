package flicker

import (
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/flanksource/commons/logger"
	"gopkg.in/yaml.v3"

	"github.com/flicker-sh/flicker/style"
)

// Config is the optional on-disk configuration, read from
// $XDG_CONFIG_HOME/flicker/config.yaml. Flags override it.
type Config struct {
	Style    string `yaml:"style,omitempty"`
	NoColor  bool   `yaml:"no_color,omitempty"`
	Interval string `yaml:"interval,omitempty"` // Go duration string, e.g. "80ms"
}

// LoadConfig reads the config file if present. A missing file is not an
// error; a malformed one is.
func LoadConfig() (Config, error) {
	var cfg Config

	path, err := xdg.SearchConfigFile("flicker/config.yaml")
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	logger.Debugf("loaded config from %s", path)
	return cfg, nil
}

// Apply installs the configured defaults process-wide. Style names are
// validated here so a bad config fails up front rather than mid-watch.
func (c Config) Apply() error {
	if c.Style != "" {
		if _, err := style.Get(c.Style); err != nil {
			return err
		}
		style.Default = c.Style
		Flags.Style = c.Style
	}
	if c.NoColor {
		Flags.NoColor = true
	}
	if c.Interval != "" {
		d, err := time.ParseDuration(c.Interval)
		if err != nil {
			return fmt.Errorf("parsing config interval %q: %w", c.Interval, err)
		}
		if d <= 0 {
			return fmt.Errorf("config interval must be positive, got %s", d)
		}
		style.Interval = d
		Flags.Interval = d
	}
	return nil
}
