package config

import (
	"fmt"
	"os"

	"github.com/lvim-tech/snapassist/pkg/imageformat"
)

const (
	minJPEGQuality = 1
	maxJPEGQuality = 100
)

// Validate makes sure the base and screenshots directories exist and checks
// the image settings. It returns one message per problem, in check order, and
// nil when the configuration is usable. It never fails itself; deciding
// whether a problem is fatal is up to the caller.
//
// Window size, hotkeys, timing and feature toggles are not checked.
func (c *Config) Validate() []string {
	var errs []string

	if err := c.ensureDirs(); err != nil {
		errs = append(errs, fmt.Sprintf("failed to create directories: %v", err))
	}

	if _, err := imageformat.Parse(c.Image.Format); err != nil {
		errs = append(errs, err.Error())
	}

	if q := c.Image.JPEGQuality; q < minJPEGQuality || q > maxJPEGQuality {
		errs = append(errs, fmt.Sprintf("JPEG quality must be between %d and %d: %d", minJPEGQuality, maxJPEGQuality, q))
	}

	return errs
}

func (c *Config) ensureDirs() error {
	if err := os.MkdirAll(c.BaseDir, 0o755); err != nil {
		return err
	}
	return os.MkdirAll(c.ScreenshotsDir(), 0o755)
}
