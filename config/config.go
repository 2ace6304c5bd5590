package config

import (
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/ubfsw/digitpad/log"
)

const (
	DefaultAPIURL = "https://ub-fsw-server.onrender.com/api/digit-classifier"

	defaultConfigFile  = "config.yaml"
	defaultSessionFile = "session.yaml"
)

// Config holds the runtime settings of the pad and its front-ends.
type Config struct {
	APIURL         string        `yaml:"api_url"`
	Timeout        time.Duration `yaml:"timeout"`
	CanvasSize     int           `yaml:"canvas_size"`
	RasterSize     int           `yaml:"raster_size"`
	LiveInkWidth   float64       `yaml:"live_ink_width"`
	RedrawInkWidth float64       `yaml:"redraw_ink_width"`
	SessionFile    string        `yaml:"session_file"`
	SentryDSN      string        `yaml:"sentry_dsn,omitempty"`
}

// Default returns the settings of the reference canvas: a 280px square
// downsampled to 28px, wide ink while drawing and narrow ink on redraw.
func Default() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		Timeout:        30 * time.Second,
		CanvasSize:     280,
		RasterSize:     28,
		LiveInkWidth:   18,
		RedrawInkWidth: 5,
	}
}

// Dir returns the directory holding the config and session files, creating
// it if needed. It falls back to ~/.digitpad when the user config dir is not
// usable.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil {
		dir := path.Join(configDir, "digitpad")
		if err = os.MkdirAll(dir, 0700); err == nil {
			return dir, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "can't resolve home directory")
	}
	dir := path.Join(home, ".digitpad")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", errors.Wrap(err, "can't create config directory")
	}
	return dir, nil
}

// DefaultPath is the config file location used when none is given.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return path.Join(dir, defaultConfigFile), nil
}

// Load reads the config file at filename (a missing file yields the defaults),
// applies environment overrides and validates the result.
func Load(filename string) (Config, error) {
	cfg := Default()

	if filename != "" {
		b, err := os.ReadFile(filename)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, errors.Wrapf(err, "can't parse config %s", filename)
			}
			log.Trace.Printf("config loaded: %s", filename)
		case os.IsNotExist(err):
			log.Trace.Printf("no config at %s, using defaults", filename)
		default:
			return cfg, errors.Wrapf(err, "can't read config %s", filename)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	if cfg.SessionFile == "" {
		dir, err := Dir()
		if err != nil {
			return cfg, err
		}
		cfg.SessionFile = path.Join(dir, defaultSessionFile)
	}

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DIGITPAD_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("DIGITPAD_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, "invalid DIGITPAD_TIMEOUT")
		}
		c.Timeout = d
	}
	if v := os.Getenv("DIGITPAD_SESSION"); v != "" {
		c.SessionFile = v
	}
	if v := os.Getenv("DIGITPAD_SENTRY_DSN"); v != "" {
		c.SentryDSN = v
	}
	return nil
}

// Validate checks the geometry and transport settings.
func (c Config) Validate() error {
	switch {
	case c.APIURL == "":
		return errors.New("api_url is required")
	case c.Timeout <= 0:
		return errors.New("timeout must be positive")
	case c.CanvasSize <= 0:
		return errors.New("canvas_size must be positive")
	case c.RasterSize <= 0:
		return errors.New("raster_size must be positive")
	case c.RasterSize > c.CanvasSize:
		return errors.New("raster_size can't exceed canvas_size")
	case c.LiveInkWidth <= 0 || c.RedrawInkWidth <= 0:
		return errors.New("ink widths must be positive")
	}
	return nil
}

// Save writes the config as yaml.
func (c Config) Save(filename string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(filename, b, 0600), "can't write config %s", filename)
}
