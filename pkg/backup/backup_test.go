package backup

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvim-tech/snapassist/pkg/config"
	"github.com/lvim-tech/snapassist/pkg/imageformat"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		BaseDir: t.TempDir(),
		Image:   config.ImageConfig{Format: "PNG", JPEGQuality: 95},
		Backup: config.BackupConfig{
			Enabled:         true,
			FilenameFormat:  "screenshot_{timestamp}.png",
			TimestampFormat: "%Y%m%d_%H%M%S",
			MaxBackups:      100,
		},
	}
}

func testLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func writeCurrent(t *testing.T, cfg *config.Config) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})

	f, err := os.Create(cfg.CurrentScreenshotPath())
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func touch(t *testing.T, path string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestNewRejectsUnsupportedFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.Image.Format = "GIF"

	_, err := New(cfg, testLogger())

	assert.ErrorIs(t, err, imageformat.ErrUnsupported)
}

func TestArchive(t *testing.T) {
	cfg := testConfig(t)
	cfg.Image.Format = "JPEG"
	cfg.Image.JPEGQuality = 80
	writeCurrent(t, cfg)

	store, err := New(cfg, testLogger())
	require.NoError(t, err)

	path, err := store.Archive(captureTime)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.ScreenshotsDir(), "screenshot_20261017_140309.jpg"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, format, err := imageformat.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, imageformat.JPEG, format)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
}

func TestArchiveNameCollision(t *testing.T) {
	cfg := testConfig(t)
	cfg.Backup.MaxBackups = 0
	writeCurrent(t, cfg)

	store, err := New(cfg, testLogger())
	require.NoError(t, err)

	first, err := store.Archive(captureTime)
	require.NoError(t, err)
	second, err := store.Archive(captureTime)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "screenshot_20261017_140309_1.png", filepath.Base(second))
}

func TestArchiveDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Backup.Enabled = false
	writeCurrent(t, cfg)

	store, err := New(cfg, testLogger())
	require.NoError(t, err)

	_, err = store.Archive(captureTime)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestArchiveWithoutScreenshot(t *testing.T) {
	store, err := New(testConfig(t), testLogger())
	require.NoError(t, err)

	_, err = store.Archive(captureTime)
	assert.ErrorIs(t, err, ErrNoScreenshot)
}

func TestPruneKeepsNewest(t *testing.T) {
	tests := []struct {
		name     string
		template string
		prefix   string
		foreign  []string
	}{
		{
			name:     "default template",
			template: "screenshot_{timestamp}.png",
			prefix:   "screenshot_",
			foreign:  []string{"notes.txt", "screenshot_holiday.png", "screenshot_2026.png"},
		},
		{
			name:     "bare timestamp",
			template: "{timestamp}.png",
			foreign:  []string{"holiday.png", "current.png", "20260101.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Backup.FilenameFormat = tt.template
			cfg.Backup.MaxBackups = 3
			dir := cfg.ScreenshotsDir()
			require.NoError(t, os.MkdirAll(dir, 0o755))

			base := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
			var names []string
			for i := 0; i < 5; i++ {
				name := fmt.Sprintf("%s2026010%d_120000.png", tt.prefix, i+1)
				names = append(names, name)
				touch(t, filepath.Join(dir, name), base.Add(time.Duration(i)*time.Hour))
			}
			for _, name := range tt.foreign {
				touch(t, filepath.Join(dir, name), base.Add(-time.Hour))
			}

			store, err := New(cfg, testLogger())
			require.NoError(t, err)

			removed, err := store.Prune()
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{
				filepath.Join(dir, names[0]),
				filepath.Join(dir, names[1]),
			}, removed)

			entries, err := store.List()
			require.NoError(t, err)
			require.Len(t, entries, 3)
			assert.Equal(t, names[4], entries[0].Name)
			assert.Equal(t, names[2], entries[2].Name)
			for _, name := range tt.foreign {
				assert.FileExists(t, filepath.Join(dir, name))
			}
		})
	}
}

func TestPruneUnlimited(t *testing.T) {
	cfg := testConfig(t)
	cfg.Backup.MaxBackups = 0
	require.NoError(t, os.MkdirAll(cfg.ScreenshotsDir(), 0o755))
	for i := 0; i < 3; i++ {
		name := fmt.Sprintf("screenshot_2026010%d_120000.png", i+1)
		touch(t, filepath.Join(cfg.ScreenshotsDir(), name), time.Now())
	}

	store, err := New(cfg, testLogger())
	require.NoError(t, err)

	removed, err := store.Prune()
	require.NoError(t, err)
	assert.Empty(t, removed)

	entries, err := store.List()
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestNewRejectsTimestampWithSeparator(t *testing.T) {
	cfg := testConfig(t)
	cfg.Backup.TimestampFormat = "%D"

	_, err := New(cfg, testLogger())

	assert.Error(t, err)
}

func TestListMissingDirectory(t *testing.T) {
	store, err := New(testConfig(t), testLogger())
	require.NoError(t, err)

	entries, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
