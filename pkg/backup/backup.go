// Package backup keeps the history of captured screenshots.
// Each capture is copied from the current screenshot path into the screenshots
// directory under a templated name, and the oldest copies are pruned once the
// configured retention count is exceeded.
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lvim-tech/snapassist/pkg/config"
	"github.com/lvim-tech/snapassist/pkg/imageformat"
)

var (
	// ErrDisabled is returned by Archive when backups are turned off.
	ErrDisabled = errors.New("backups are disabled")

	// ErrNoScreenshot is returned by Archive when there is no current screenshot.
	ErrNoScreenshot = errors.New("no current screenshot")
)

// maxCollisions bounds the _N suffixes tried for one name.
const maxCollisions = 1000

// Entry is one backup file.
type Entry struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// Store manages the backup directory of one configuration.
type Store struct {
	dir        string
	current    string
	enabled    bool
	maxBackups int
	format     imageformat.Format
	quality    int
	namer      *Namer
	logger     logrus.FieldLogger
}

// New returns a Store for cfg. It fails when the image format or the
// filename settings are unusable.
func New(cfg *config.Config, logger logrus.FieldLogger) (*Store, error) {
	format, err := imageformat.Parse(cfg.Image.Format)
	if err != nil {
		return nil, err
	}

	namer, err := NewNamer(cfg.Backup.FilenameFormat, cfg.Backup.TimestampFormat, format)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Store{
		dir:        cfg.ScreenshotsDir(),
		current:    cfg.CurrentScreenshotPath(),
		enabled:    cfg.Backup.Enabled,
		maxBackups: cfg.Backup.MaxBackups,
		format:     format,
		quality:    cfg.Image.JPEGQuality,
		namer:      namer,
		logger:     logger.WithField("component", "backup"),
	}, nil
}

// Archive copies the current screenshot into the backup directory, encoded
// in the configured format, then prunes old backups. It returns the path of
// the new backup.
func (s *Store) Archive(now time.Time) (string, error) {
	if !s.enabled {
		return "", ErrDisabled
	}

	f, err := os.Open(s.current)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNoScreenshot, s.current)
	}
	if err != nil {
		return "", fmt.Errorf("failed to open current screenshot: %w", err)
	}
	img, _, err := imageformat.Decode(f)
	f.Close()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name, err := s.namer.Name(now)
	if err != nil {
		return "", err
	}

	out, path, err := s.create(name)
	if err != nil {
		return "", err
	}

	if err := imageformat.Encode(out, img, s.format, s.quality); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	s.logger.WithField("path", path).Info("screenshot backed up")

	if _, err := s.Prune(); err != nil {
		s.logger.WithError(err).Warn("failed to prune backups")
	}

	return path, nil
}

// create opens a new file for name, adding a _N suffix if it is taken.
func (s *Store) create(name string) (*os.File, string, error) {
	candidate := name
	for i := 1; i <= maxCollisions; i++ {
		path := filepath.Join(s.dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("failed to create backup: %w", err)
		}
		candidate = withSuffix(name, i)
	}
	return nil, "", fmt.Errorf("failed to create backup: too many files named like %s", name)
}

// List returns the backups, newest first. Files that do not match the
// filename template are ignored. A missing directory has no backups.
func (s *Store) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if !de.Type().IsRegular() || !s.namer.Matches(de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			// removed while listing
			continue
		}
		entries = append(entries, Entry{
			Name:    de.Name(),
			Path:    filepath.Join(s.dir, de.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].ModTime.Equal(entries[j].ModTime) {
			return entries[i].ModTime.After(entries[j].ModTime)
		}
		return entries[i].Name > entries[j].Name
	})

	return entries, nil
}

// Prune removes the oldest backups beyond the retention count and returns
// the removed paths. A retention count of 0 keeps everything.
func (s *Store) Prune() ([]string, error) {
	if s.maxBackups <= 0 {
		return nil, nil
	}

	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(entries) <= s.maxBackups {
		return nil, nil
	}

	var removed []string
	var errs []error
	for _, e := range entries[s.maxBackups:] {
		if err := os.Remove(e.Path); err != nil {
			errs = append(errs, err)
			continue
		}
		s.logger.WithField("path", e.Path).Debug("removed old backup")
		removed = append(removed, e.Path)
	}

	return removed, errors.Join(errs...)
}

// Dir returns the backup directory.
func (s *Store) Dir() string {
	return s.dir
}
