// Package config provides configuration management for pomo.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config holds all configuration for the pomo application.
// Interval lengths are fixed by the timer and deliberately not configurable.
type Config struct {
	Haptics       HapticsConfig      `mapstructure:"haptics"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Journal       JournalConfig      `mapstructure:"journal"`
	MCP           MCPConfig          `mapstructure:"mcp"`
	Log           LogConfig          `mapstructure:"log"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorWork      string `mapstructure:"color_work"`
	ColorBreak     string `mapstructure:"color_break"`
	ColorPaused    string `mapstructure:"color_paused"`
	ColorIdle      string `mapstructure:"color_idle"`
	ColorCount     string `mapstructure:"color_count"`
	ColorActionBar string `mapstructure:"color_action_bar"`
	ColorHelp      string `mapstructure:"color_help"`
	ColorPulse     string `mapstructure:"color_pulse"`
	IconPlay       string `mapstructure:"icon_play"`
	IconPause      string `mapstructure:"icon_pause"`
	IconStop       string `mapstructure:"icon_stop"`
	IconCycle      string `mapstructure:"icon_cycle"`
	IconShortPulse string `mapstructure:"icon_short_pulse"`
	IconLongPulse  string `mapstructure:"icon_long_pulse"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorWork:      "#E4572E",
		ColorBreak:     "#4ECDC4",
		ColorPaused:    "#6B7280",
		ColorIdle:      "#A0AEC0",
		ColorCount:     "#F3A712",
		ColorActionBar: "#1F2937",
		ColorHelp:      "#95A5A6",
		ColorPulse:     "#A78BFA",
		IconPlay:       "▶",
		IconPause:      "⏸",
		IconStop:       "■",
		IconCycle:      "🍅",
		IconShortPulse: "~ bzz ~",
		IconLongPulse:  "~ bzzzzzz ~",
	}
}

// HapticsConfig holds vibration settings. On a desktop a pulse is a beep.
type HapticsConfig struct {
	Enabled    bool     `mapstructure:"enabled"`
	Sound      bool     `mapstructure:"sound"`
	ShortPulse Duration `mapstructure:"short_pulse"`
	LongPulse  Duration `mapstructure:"long_pulse"`
}

// NotificationConfig holds desktop notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// JournalConfig holds transition journal settings.
type JournalConfig struct {
	// Path is the SQLite database; ":memory:" keeps the journal for the
	// lifetime of the process only.
	Path string `mapstructure:"path"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Realtime bool `mapstructure:"realtime"`
}

// LogConfig holds debug logging settings.
type LogConfig struct {
	File string `mapstructure:"file"`
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// Milliseconds returns the duration in whole milliseconds.
func (d Duration) Milliseconds() int {
	return int(time.Duration(d) / time.Millisecond)
}

// MemoryJournal is the journal path that keeps nothing on disk.
const MemoryJournal = ":memory:"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Haptics: HapticsConfig{
			Enabled:    true,
			Sound:      true,
			ShortPulse: Duration(200 * time.Millisecond),
			LongPulse:  Duration(800 * time.Millisecond),
		},
		Notifications: NotificationConfig{
			Enabled: true,
		},
		Journal: JournalConfig{
			Path: MemoryJournal,
		},
		MCP: MCPConfig{
			Realtime: false,
		},
		Log: LogConfig{
			File: "~/.pomo/debug.log",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the config file, creating it with
// defaults on first use.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := newViper(configPath)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault is Load, falling back to the defaults when the config
// cannot be read. The load error is returned alongside the defaults.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if err == nil {
		return cfg, nil
	}
	cfg = DefaultConfig()
	if expandErr := cfg.expandPaths(); expandErr != nil {
		cfg.Log.File = ""
	}
	return cfg, err
}

func (c *Config) expandPaths() error {
	var err error
	c.Log.File, err = expandHome(c.Log.File)
	if err != nil {
		return err
	}
	if c.Journal.Path != MemoryJournal {
		c.Journal.Path, err = expandHome(c.Journal.Path)
		if err != nil {
			return err
		}
	}
	return nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(configPath)
	v.Set("haptics.enabled", cfg.Haptics.Enabled)
	v.Set("haptics.sound", cfg.Haptics.Sound)
	v.Set("haptics.short_pulse", cfg.Haptics.ShortPulse.String())
	v.Set("haptics.long_pulse", cfg.Haptics.LongPulse.String())
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("journal.path", cfg.Journal.Path)
	v.Set("mcp.realtime", cfg.MCP.Realtime)
	v.Set("log.file", cfg.Log.File)
	v.Set("theme.color_work", cfg.Theme.ColorWork)
	v.Set("theme.color_break", cfg.Theme.ColorBreak)
	v.Set("theme.color_paused", cfg.Theme.ColorPaused)
	v.Set("theme.color_idle", cfg.Theme.ColorIdle)
	v.Set("theme.color_count", cfg.Theme.ColorCount)
	v.Set("theme.color_action_bar", cfg.Theme.ColorActionBar)
	v.Set("theme.color_help", cfg.Theme.ColorHelp)
	v.Set("theme.color_pulse", cfg.Theme.ColorPulse)
	v.Set("theme.icon_play", cfg.Theme.IconPlay)
	v.Set("theme.icon_pause", cfg.Theme.IconPause)
	v.Set("theme.icon_stop", cfg.Theme.IconStop)
	v.Set("theme.icon_cycle", cfg.Theme.IconCycle)
	v.Set("theme.icon_short_pulse", cfg.Theme.IconShortPulse)
	v.Set("theme.icon_long_pulse", cfg.Theme.IconLongPulse)

	return v.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomo", "config.toml"), nil
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	return v
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) (string, error) {
	if len(path) < 2 || path[:2] != "~/" {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("haptics.enabled", defaults.Haptics.Enabled)
	v.SetDefault("haptics.sound", defaults.Haptics.Sound)
	v.SetDefault("haptics.short_pulse", defaults.Haptics.ShortPulse.String())
	v.SetDefault("haptics.long_pulse", defaults.Haptics.LongPulse.String())
	v.SetDefault("notifications.enabled", defaults.Notifications.Enabled)
	v.SetDefault("journal.path", defaults.Journal.Path)
	v.SetDefault("mcp.realtime", defaults.MCP.Realtime)
	v.SetDefault("log.file", defaults.Log.File)

	// Theme defaults
	theme := defaults.Theme
	v.SetDefault("theme.color_work", theme.ColorWork)
	v.SetDefault("theme.color_break", theme.ColorBreak)
	v.SetDefault("theme.color_paused", theme.ColorPaused)
	v.SetDefault("theme.color_idle", theme.ColorIdle)
	v.SetDefault("theme.color_count", theme.ColorCount)
	v.SetDefault("theme.color_action_bar", theme.ColorActionBar)
	v.SetDefault("theme.color_help", theme.ColorHelp)
	v.SetDefault("theme.color_pulse", theme.ColorPulse)
	v.SetDefault("theme.icon_play", theme.IconPlay)
	v.SetDefault("theme.icon_pause", theme.IconPause)
	v.SetDefault("theme.icon_stop", theme.IconStop)
	v.SetDefault("theme.icon_cycle", theme.IconCycle)
	v.SetDefault("theme.icon_short_pulse", theme.IconShortPulse)
	v.SetDefault("theme.icon_long_pulse", theme.IconLongPulse)
}
