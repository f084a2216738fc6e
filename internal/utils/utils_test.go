package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SNAP_TEST_DIR", "/srv/shots")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "tilde only", in: "~", want: home},
		{name: "tilde prefix", in: "~/Desktop/shots", want: filepath.Join(home, "Desktop", "shots")},
		{name: "env var", in: "$SNAP_TEST_DIR/today", want: "/srv/shots/today"},
		{name: "absolute", in: "/tmp/shots", want: "/tmp/shots"},
		{name: "tilde in the middle is kept", in: "/tmp/~x", want: "/tmp/~x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestGetConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Equal(t, filepath.Join(home, ".config"), GetConfigDir())

	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/xdg", GetConfigDir())
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "current.png")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	assert.True(t, FileExists(file))
	assert.True(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing")))
}
