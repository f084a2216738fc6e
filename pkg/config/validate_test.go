package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		BaseDir: filepath.Join(t.TempDir(), "Screenshot Helper"),
		Image:   ImageConfig{Format: "PNG", JPEGQuality: 95},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		quality  int
		wantErrs int
		mention  string
	}{
		{name: "png", format: "PNG", quality: 95},
		{name: "jpeg lowest quality", format: "JPEG", quality: 1},
		{name: "bmp highest quality", format: "BMP", quality: 100},
		{name: "gif", format: "GIF", quality: 50, wantErrs: 1, mention: "GIF"},
		{name: "lowercase format", format: "png", quality: 50, wantErrs: 1, mention: "png"},
		{name: "quality too high", format: "JPEG", quality: 150, wantErrs: 1, mention: "150"},
		{name: "quality zero", format: "JPEG", quality: 0, wantErrs: 1, mention: "0"},
		{name: "quality 101", format: "PNG", quality: 101, wantErrs: 1, mention: "101"},
		{name: "quality negative", format: "BMP", quality: -5, wantErrs: 1, mention: "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			cfg.Image.Format = tt.format
			cfg.Image.JPEGQuality = tt.quality

			errs := cfg.Validate()

			require.Len(t, errs, tt.wantErrs, "errors: %v", errs)
			if tt.mention != "" {
				assert.Contains(t, errs[0], tt.mention)
			}
		})
	}
}

func TestValidateExactMessages(t *testing.T) {
	cfg := validConfig(t)
	cfg.Image.Format = "GIF"
	assert.Equal(t, []string{"unsupported image format: GIF"}, cfg.Validate())

	cfg = validConfig(t)
	cfg.Image.Format = "JPEG"
	cfg.Image.JPEGQuality = 150
	assert.Equal(t, []string{"JPEG quality must be between 1 and 100: 150"}, cfg.Validate())
}

func TestValidateCreatesDirectories(t *testing.T) {
	cfg := validConfig(t)

	require.Empty(t, cfg.Validate())

	assert.DirExists(t, cfg.BaseDir)
	assert.DirExists(t, cfg.ScreenshotsDir())
}

func TestValidateIsIdempotent(t *testing.T) {
	cfg := validConfig(t)
	cfg.Image.Format = "TIFF"

	first := cfg.Validate()
	second := cfg.Validate()

	assert.Equal(t, first, second)
	assert.Len(t, first, 1)
}

func TestValidateUnwritableBaseDir(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cfg := validConfig(t)
	cfg.BaseDir = filepath.Join(blocker, "Screenshot Helper")

	var errs []string
	assert.NotPanics(t, func() { errs = cfg.Validate() })

	require.Len(t, errs, 1)
	assert.True(t, strings.HasPrefix(errs[0], "failed to create directories:"), errs[0])
}

func TestValidateReportsEveryProblemInOrder(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	cfg := &Config{
		BaseDir: filepath.Join(blocker, "base"),
		Image:   ImageConfig{Format: "GIF", JPEGQuality: 0},
	}

	errs := cfg.Validate()

	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], "failed to create directories")
	assert.Contains(t, errs[1], "GIF")
	assert.Contains(t, errs[2], ": 0")
}

func TestValidateDefaults(t *testing.T) {
	_, opts := isolate(t, nil)
	cfg, err := Load(opts...)
	require.NoError(t, err)

	assert.Empty(t, cfg.Validate())
}
