package config

// File is a partially filled config file. Pointer fields tell an absent key
// apart from a zero value so that only keys present in the file override the
// defaults.
type File struct {
	BaseDir *string `toml:"base_dir"`

	Window   WindowConfigFile  `toml:"window"`
	Font     FontConfigFile    `toml:"font"`
	Image    ImageConfigFile   `toml:"image"`
	Backup   BackupConfigFile  `toml:"backup"`
	Timing   TimingConfigFile  `toml:"timing"`
	Features FeatureConfigFile `toml:"features"`

	Colors  map[string]string `toml:"colors"`
	Hotkeys map[string]string `toml:"hotkeys"`
}

// WindowConfigFile is the file form of WindowConfig.
type WindowConfigFile struct {
	Width  *int `toml:"width"`
	Height *int `toml:"height"`
}

// FontConfigFile is the file form of FontConfig.
type FontConfigFile struct {
	Family     *string `toml:"family"`
	SizeTitle  *int    `toml:"size_title"`
	SizeNormal *int    `toml:"size_normal"`
	SizeSmall  *int    `toml:"size_small"`
}

// ImageConfigFile is the file form of ImageConfig.
type ImageConfigFile struct {
	Format      *string `toml:"format"`
	JPEGQuality *int    `toml:"jpeg_quality"`
}

// BackupConfigFile is the file form of BackupConfig.
type BackupConfigFile struct {
	Enabled         *bool   `toml:"enabled"`
	FilenameFormat  *string `toml:"filename_format"`
	TimestampFormat *string `toml:"timestamp_format"`
	MaxBackups      *int    `toml:"max_backups"`
}

// TimingConfigFile is the file form of TimingConfig.
type TimingConfigFile struct {
	ClipboardCheckInterval *float64 `toml:"clipboard_check_interval"`
	ScreenshotTimeout      *float64 `toml:"screenshot_timeout"`
}

// FeatureConfigFile is the file form of FeatureConfig.
type FeatureConfigFile struct {
	Notifications        *bool `toml:"notifications"`
	NotificationDuration *int  `toml:"notification_duration"`
	MinimizeToTray       *bool `toml:"minimize_to_tray"`
	AutoStart            *bool `toml:"auto_start"`
	Debug                *bool `toml:"debug"`
}

// merge overlays the keys set in f. Empty strings never override.
func (c *Config) merge(f *File) {
	setString(&c.BaseDir, f.BaseDir)

	// Window
	setInt(&c.Window.Width, f.Window.Width)
	setInt(&c.Window.Height, f.Window.Height)

	// Font
	setString(&c.Font.Family, f.Font.Family)
	setInt(&c.Font.SizeTitle, f.Font.SizeTitle)
	setInt(&c.Font.SizeNormal, f.Font.SizeNormal)
	setInt(&c.Font.SizeSmall, f.Font.SizeSmall)

	// Image
	setString(&c.Image.Format, f.Image.Format)
	setInt(&c.Image.JPEGQuality, f.Image.JPEGQuality)

	// Backup
	setBool(&c.Backup.Enabled, f.Backup.Enabled)
	setString(&c.Backup.FilenameFormat, f.Backup.FilenameFormat)
	setString(&c.Backup.TimestampFormat, f.Backup.TimestampFormat)
	setInt(&c.Backup.MaxBackups, f.Backup.MaxBackups)

	// Timing
	if f.Timing.ClipboardCheckInterval != nil {
		c.Timing.ClipboardCheckInterval = *f.Timing.ClipboardCheckInterval
	}
	if f.Timing.ScreenshotTimeout != nil {
		c.Timing.ScreenshotTimeout = *f.Timing.ScreenshotTimeout
	}

	// Features
	setBool(&c.Features.Notifications, f.Features.Notifications)
	setInt(&c.Features.NotificationDuration, f.Features.NotificationDuration)
	setBool(&c.Features.MinimizeToTray, f.Features.MinimizeToTray)
	setBool(&c.Features.AutoStart, f.Features.AutoStart)
	setBool(&c.Features.Debug, f.Features.Debug)

	// Maps merge per key so a file can rebind one hotkey and keep the other.
	c.ColorMap = mergeStringMap(c.ColorMap, f.Colors)
	c.KeyMap = mergeStringMap(c.KeyMap, f.Hotkeys)
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func mergeStringMap(base, user map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(user))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range user {
		if v != "" {
			merged[k] = v
		}
	}
	return merged
}
