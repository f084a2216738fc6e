// Package config provides configuration management for snapassist.
// It loads the embedded defaults, overlays the system or user config file and
// SNAPASSIST_* environment variables, and validates the result at startup.
package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
	"github.com/sirupsen/logrus"

	"github.com/lvim-tech/snapassist/internal/utils"
)

//go:embed default.toml
var defaultConfigData string

const (
	appName = "snapassist"

	screenshotsDirName    = "screenshots"
	currentScreenshotName = "current.png"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SNAPASSIST_"
)

// ErrConfigExists is returned by InitUserConfig when a user config is already present.
var ErrConfigExists = errors.New("config already exists")

// Config is the process-wide settings record. Build it once with Load and
// pass it to whatever needs it; nothing modifies it afterwards.
type Config struct {
	BaseDir string `toml:"base_dir" env:"BASE_DIR, overwrite" mapstructure:"base_dir"`

	Window   WindowConfig  `toml:"window" env:", prefix=WINDOW_" mapstructure:"window"`
	Font     FontConfig    `toml:"font" env:", prefix=FONT_" mapstructure:"font"`
	Image    ImageConfig   `toml:"image" env:", prefix=IMAGE_" mapstructure:"image"`
	Backup   BackupConfig  `toml:"backup" env:", prefix=BACKUP_" mapstructure:"backup"`
	Timing   TimingConfig  `toml:"timing" env:", prefix=TIMING_" mapstructure:"timing"`
	Features FeatureConfig `toml:"features" env:", prefix=FEATURES_" mapstructure:"features"`

	// ColorMap holds the color roles: bg, fg, accent, button, error, warning.
	// KeyMap binds action names to key combinations, which are not parsed here.
	ColorMap map[string]string `toml:"colors" mapstructure:"colors"`
	KeyMap   map[string]string `toml:"hotkeys" mapstructure:"hotkeys"`
}

// WindowConfig holds the main window geometry in pixels.
type WindowConfig struct {
	Width  int `toml:"width" env:"WIDTH, overwrite" mapstructure:"width"`
	Height int `toml:"height" env:"HEIGHT, overwrite" mapstructure:"height"`
}

// FontConfig holds the UI font family and point sizes.
type FontConfig struct {
	Family     string `toml:"family" env:"FAMILY, overwrite" mapstructure:"family"`
	SizeTitle  int    `toml:"size_title" env:"SIZE_TITLE, overwrite" mapstructure:"size_title"`
	SizeNormal int    `toml:"size_normal" env:"SIZE_NORMAL, overwrite" mapstructure:"size_normal"`
	SizeSmall  int    `toml:"size_small" env:"SIZE_SMALL, overwrite" mapstructure:"size_small"`
}

// ImageConfig selects how screenshots are encoded.
type ImageConfig struct {
	Format      string `toml:"format" env:"FORMAT, overwrite" mapstructure:"format"`
	JPEGQuality int    `toml:"jpeg_quality" env:"JPEG_QUALITY, overwrite" mapstructure:"jpeg_quality"`
}

// BackupConfig controls the screenshot backup history. MaxBackups of 0 keeps
// every backup.
type BackupConfig struct {
	Enabled         bool   `toml:"enabled" env:"ENABLED, overwrite" mapstructure:"enabled"`
	FilenameFormat  string `toml:"filename_format" env:"FILENAME_FORMAT, overwrite" mapstructure:"filename_format"`
	TimestampFormat string `toml:"timestamp_format" env:"TIMESTAMP_FORMAT, overwrite" mapstructure:"timestamp_format"`
	MaxBackups      int    `toml:"max_backups" env:"MAX_BACKUPS, overwrite" mapstructure:"max_backups"`
}

// TimingConfig holds polling and timeout intervals in seconds.
type TimingConfig struct {
	ClipboardCheckInterval float64 `toml:"clipboard_check_interval" env:"CLIPBOARD_CHECK_INTERVAL, overwrite" mapstructure:"clipboard_check_interval"`
	ScreenshotTimeout      float64 `toml:"screenshot_timeout" env:"SCREENSHOT_TIMEOUT, overwrite" mapstructure:"screenshot_timeout"`
}

// FeatureConfig holds the feature toggles. NotificationDuration is in
// milliseconds.
type FeatureConfig struct {
	Notifications        bool `toml:"notifications" env:"NOTIFICATIONS, overwrite" mapstructure:"notifications"`
	NotificationDuration int  `toml:"notification_duration" env:"NOTIFICATION_DURATION, overwrite" mapstructure:"notification_duration"`
	MinimizeToTray       bool `toml:"minimize_to_tray" env:"MINIMIZE_TO_TRAY, overwrite" mapstructure:"minimize_to_tray"`
	AutoStart            bool `toml:"auto_start" env:"AUTO_START, overwrite" mapstructure:"auto_start"`
	Debug                bool `toml:"debug" env:"DEBUG, overwrite" mapstructure:"debug"`
}

type loadOptions struct {
	file       string
	lookuper   envconfig.Lookuper
	logger     logrus.FieldLogger
	userPath   string
	systemPath string
}

// Option customizes Load.
type Option func(*loadOptions)

// WithFile loads path instead of searching the user and system locations.
// Unlike the searched files, a missing or broken explicit file is an error.
func WithFile(path string) Option {
	return func(o *loadOptions) { o.file = path }
}

// WithLookuper replaces the process environment as the source of overrides.
// The SNAPASSIST_ prefix is still applied.
func WithLookuper(l envconfig.Lookuper) Option {
	return func(o *loadOptions) { o.lookuper = l }
}

// WithLogger sets where load warnings go.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *loadOptions) { o.logger = l }
}

// withSearchPaths overrides the user and system file locations.
func withSearchPaths(user, system string) Option {
	return func(o *loadOptions) {
		o.userPath = user
		o.systemPath = system
	}
}

// UserConfigPath returns the path to the user config file.
func UserConfigPath() string {
	return filepath.Join(utils.GetConfigDir(), appName, "config.toml")
}

// SystemConfigPath returns the path to the system-wide config file.
func SystemConfigPath() string {
	return filepath.Join("/etc", appName, "config.toml")
}

// Load builds the configuration: embedded defaults, then the first config
// file found, then environment overrides.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{
		lookuper:   envconfig.OsLookuper(),
		logger:     logrus.StandardLogger(),
		userPath:   UserConfigPath(),
		systemPath: SystemConfigPath(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := loadDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if o.file != "" {
		fileCfg, err := loadConfigFromFile(o.file)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", o.file, err)
		}
		cfg.merge(fileCfg)
	} else {
		for _, path := range []string{o.userPath, o.systemPath} {
			if !utils.FileExists(path) {
				continue
			}
			fileCfg, err := loadConfigFromFile(path)
			if err != nil {
				o.logger.WithError(err).WithField("path", path).Warn("failed to load config file, using defaults")
				break
			}
			o.logger.WithField("path", path).Debug("loaded config file")
			cfg.merge(fileCfg)
			break
		}
	}

	if err := cfg.applyEnv(o.lookuper); err != nil {
		return nil, err
	}

	cfg.BaseDir = utils.ExpandPath(cfg.BaseDir)

	return cfg, nil
}

// loadDefaultConfig decodes the embedded defaults.
func loadDefaultConfig() (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(defaultConfigData, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFromFile reads a partial config file.
func loadConfigFromFile(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// applyEnv overlays SNAPASSIST_* variables. Unset variables keep the current value.
func (c *Config) applyEnv(l envconfig.Lookuper) error {
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   c,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, l),
	})
	if err != nil {
		return fmt.Errorf("failed to parse environment variables: %w", err)
	}
	return nil
}

// ScreenshotsDir returns the backup directory under the base directory.
func (c *Config) ScreenshotsDir() string {
	return filepath.Join(c.BaseDir, screenshotsDirName)
}

// CurrentScreenshotPath returns the fixed path of the latest capture.
func (c *Config) CurrentScreenshotPath() string {
	return filepath.Join(c.BaseDir, currentScreenshotName)
}

// Colors returns a copy of the color roles.
func (c *Config) Colors() map[string]string {
	return maps.Clone(c.ColorMap)
}

// Hotkeys returns a copy of the action to key-combination bindings.
func (c *Config) Hotkeys() map[string]string {
	return maps.Clone(c.KeyMap)
}

// ClipboardCheckInterval returns the clipboard poll interval.
func (c *Config) ClipboardCheckInterval() time.Duration {
	return seconds(c.Timing.ClipboardCheckInterval)
}

// ScreenshotTimeout returns how long to wait for a capture to appear.
func (c *Config) ScreenshotTimeout() time.Duration {
	return seconds(c.Timing.ScreenshotTimeout)
}

// NotificationDuration returns how long notifications stay on screen.
func (c *Config) NotificationDuration() time.Duration {
	return time.Duration(c.Features.NotificationDuration) * time.Millisecond
}

// MaxBackupsLabel renders the retention limit for display.
func (c *Config) MaxBackupsLabel() string {
	if c.Backup.MaxBackups > 0 {
		return fmt.Sprintf("%d", c.Backup.MaxBackups)
	}
	return "unlimited"
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// InitUserConfig copies the default config into the user config directory
// and returns the path written.
func InitUserConfig() (string, error) {
	return initConfigAt(UserConfigPath())
}

func initConfigAt(path string) (string, error) {
	if utils.FileExists(path) {
		return "", fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigData), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}

// DefaultConfigContent returns the embedded default config.
func DefaultConfigContent() string {
	return defaultConfigData
}
