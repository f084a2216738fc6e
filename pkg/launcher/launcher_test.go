package launcher

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"rofi", "dmenu", "fzf", "bemenu", "fuzzel"}, Names())
}

func TestGetByName(t *testing.T) {
	require.NotNil(t, GetByName("fzf"))
	assert.Equal(t, "fzf", GetByName("fzf").Name())
	assert.Nil(t, GetByName("wofi"))
}

func TestNewUnknown(t *testing.T) {
	_, err := New("wofi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rofi, dmenu")
}

func TestNewNothingInstalled(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := New("")
	assert.ErrorIs(t, err, ErrNoLauncher)

	_, err = New("rofi")
	assert.Error(t, err)
}

func TestArgs(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"rofi", []string{"-dmenu", "-i", "-p", "Backup"}},
		{"dmenu", []string{"-i", "-p", "Backup"}},
		{"fzf", []string{"--prompt", "Backup> "}},
		{"bemenu", []string{"-i", "-p", "Backup"}},
		{"fuzzel", []string{"--dmenu", "-p", "Backup "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetByName(tt.name).args("Backup"))
		})
	}
}

func TestParseChoice(t *testing.T) {
	got, err := parseChoice([]byte("screenshot_1.png\n"))
	require.NoError(t, err)
	assert.Equal(t, "screenshot_1.png", got)

	_, err = parseChoice([]byte("  \n"))
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestIsCancelled(t *testing.T) {
	assert.True(t, IsCancelled(fmt.Errorf("pick: %w", ErrCancelled)))
	assert.False(t, IsCancelled(errors.New("exit status 2")))
	assert.False(t, IsCancelled(nil))
}
