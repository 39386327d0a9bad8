package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"rgqview/internal/eventbus"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Version     int            `toml:"version"`
	ResultsFile string         `toml:"results_file"`
	UISettings  UISettings     `toml:"ui"`
	Loader      LoaderSettings `toml:"loader"`
	Log         LogSettings    `toml:"log"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ExpandOnStart       bool `toml:"expand_on_start"`
	ShowQuestionNumbers bool `toml:"show_question_numbers"`
}

// LoaderSettings controls background section loading
type LoaderSettings struct {
	Concurrency int      `toml:"concurrency"`
	Timeout     Duration `toml:"timeout"`
}

// LogSettings controls the log file
type LogSettings struct {
	Debug bool   `toml:"debug"`
	Path  string `toml:"path"` // empty means the platform state directory
}

// Duration is a time.Duration written as a string such as "5s"
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Validate checks the configuration for values the app cannot run with
func (c *Config) Validate() error {
	if c.Loader.Concurrency < 1 {
		return fmt.Errorf("%w: loader.concurrency must be at least 1, got %d", ErrInvalidConfig, c.Loader.Concurrency)
	}
	if c.Loader.Timeout <= 0 {
		return fmt.Errorf("%w: loader.timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service that publishes no events.
// An empty path selects the default config path.
func NewConfigService(path string) ConfigService {
	return NewConfigServiceWithBus(nil, path)
}

// NewConfigServiceWithBus creates a config service that publishes
// ConfigSaved on bus. An empty path selects the default config path.
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "rgqview", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file. A missing file yields the defaults.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys absent from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		UISettings: UISettings{
			ShowQuestionNumbers: true,
		},
		Loader: LoaderSettings{
			Concurrency: 4,
			Timeout:     Duration(10 * time.Second),
		},
	}
}
