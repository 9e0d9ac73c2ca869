package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const appName = "tui-listproxy"

// Backend names accepted in the backend field and the -backend flag
const (
	BackendRecycler = "recycler"
	BackendListView = "listview"
)

// ListConfig tunes the list widgets
type ListConfig struct {
	LongPressMS      int  `toml:"long_press_ms"`
	WheelStep        int  `toml:"wheel_step"`
	SmoothScrollStep int  `toml:"smooth_scroll_step"`
	DividerHeight    int  `toml:"divider_height"`
	ScrollBar        bool `toml:"scrollbar"`
}

// LongPressTimeout returns the long press timeout as a duration
func (l ListConfig) LongPressTimeout() time.Duration {
	return time.Duration(l.LongPressMS) * time.Millisecond
}

// Config holds application configuration
type Config struct {
	Theme            string            `toml:"theme"`
	Backend          string            `toml:"backend"`
	StatusTimeFormat string            `toml:"status_time_format"`
	List             ListConfig        `toml:"list"`
	Settings         map[string]string `toml:"settings"`

	// Session settings are never written and win over Settings
	sessionSettings map[string]string
	path            string
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file. A missing file gives the
// defaults.
func LoadFromFile(filePath string) (*Config, error) {
	config := defaultConfig()
	config.path = filePath

	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.applyDefaults()

	if config.Backend != BackendRecycler && config.Backend != BackendListView {
		return nil, fmt.Errorf("unknown backend %q in config file", config.Backend)
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	d := defaultConfig()
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	if c.Backend == "" {
		c.Backend = d.Backend
	}
	if c.StatusTimeFormat == "" {
		c.StatusTimeFormat = d.StatusTimeFormat
	}
	if c.List.LongPressMS <= 0 {
		c.List.LongPressMS = d.List.LongPressMS
	}
	if c.List.WheelStep <= 0 {
		c.List.WheelStep = d.List.WheelStep
	}
	if c.List.SmoothScrollStep <= 0 {
		c.List.SmoothScrollStep = d.List.SmoothScrollStep
	}
	if c.List.DividerHeight < 0 {
		c.List.DividerHeight = 0
	}
	if c.Settings == nil {
		c.Settings = make(map[string]string)
	}
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Theme:            "tokyo-night",
		Backend:          BackendRecycler,
		StatusTimeFormat: "%H:%M:%S",
		List: ListConfig{
			LongPressMS:      500,
			WheelStep:        3,
			SmoothScrollStep: 3,
			ScrollBar:        true,
		},
		Settings:        make(map[string]string),
		sessionSettings: make(map[string]string),
	}
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", appName), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	return os.MkdirAll(configDir, 0755)
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Get retrieves a configuration value, session settings first.
// Returns empty string if not found in either source
func (c *Config) Get(key string) string {
	if val, ok := c.sessionSettings[key]; ok {
		return val
	}
	return c.Settings[key]
}

// GetAll returns a copy of all settings with session values applied
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string, len(c.Settings)+len(c.sessionSettings))
	for k, v := range c.Settings {
		result[k] = v
	}
	for k, v := range c.sessionSettings {
		result[k] = v
	}
	return result
}

// Save writes the configuration to the file it was loaded from, or to the
// standard location. Session settings are not written.
func (c *Config) Save() error {
	configPath := c.path
	if configPath == "" {
		var err error
		if configPath, err = getConfigPath(); err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
