// Package launcher provides an abstraction layer for menu programs.
// It supports rofi, dmenu, fzf, bemenu and fuzzel with a unified interface,
// used to pick an entry such as a backup from a list.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/lvim-tech/snapassist/internal/utils"
)

var (
	// ErrCancelled is returned when the user closes the menu without a choice.
	ErrCancelled = errors.New("cancelled by user")

	// ErrNoLauncher is returned when no supported menu program is installed.
	ErrNoLauncher = errors.New("no launcher available - please install rofi, dmenu, fzf, bemenu or fuzzel")
)

// Launcher shows a list of options and returns the chosen one.
type Launcher interface {
	Name() string
	Show(options []string, prompt string) (string, error)
}

// Command runs a dmenu-style program: options on stdin, choice on stdout.
type Command struct {
	name string
	args func(prompt string) []string
	// fzf draws on the terminal, so it needs stderr
	tty bool
}

// priority: rofi > dmenu > fzf > bemenu > fuzzel
var launchers = []*Command{
	{name: "rofi", args: func(p string) []string { return []string{"-dmenu", "-i", "-p", p} }},
	{name: "dmenu", args: func(p string) []string { return []string{"-i", "-p", p} }},
	{name: "fzf", args: func(p string) []string { return []string{"--prompt", p + "> "} }, tty: true},
	{name: "bemenu", args: func(p string) []string { return []string{"-i", "-p", p} }},
	{name: "fuzzel", args: func(p string) []string { return []string{"--dmenu", "-p", p + " "} }},
}

// Names returns the supported launcher names in detection order.
func Names() []string {
	names := make([]string, 0, len(launchers))
	for _, l := range launchers {
		names = append(names, l.name)
	}
	return names
}

// GetByName returns the launcher called name, or nil.
func GetByName(name string) *Command {
	for _, l := range launchers {
		if l.name == name {
			return l
		}
	}
	return nil
}

// New returns the named launcher, or the first installed one when name is
// empty or "auto".
func New(name string) (Launcher, error) {
	if name == "" || name == "auto" {
		return DetectAvailable()
	}

	l := GetByName(name)
	if l == nil {
		return nil, fmt.Errorf("unknown launcher %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	if !l.IsAvailable() {
		return nil, fmt.Errorf("launcher %s is not installed", name)
	}
	return l, nil
}

// DetectAvailable returns the first installed launcher.
func DetectAvailable() (Launcher, error) {
	for _, l := range launchers {
		if l.IsAvailable() {
			return l, nil
		}
	}
	return nil, ErrNoLauncher
}

// Name returns the program name.
func (c *Command) Name() string {
	return c.name
}

// IsAvailable checks whether the program is in PATH.
func (c *Command) IsAvailable() bool {
	return utils.CommandExists(c.name)
}

// Show runs the program with options on stdin.
func (c *Command) Show(options []string, prompt string) (string, error) {
	cmd := exec.Command(c.name, c.args(prompt)...)
	cmd.Stdin = strings.NewReader(strings.Join(options, "\n"))
	if c.tty {
		cmd.Stderr = os.Stderr
	}

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		// exit status 1 is ESC in dmenu/rofi, 130 is Ctrl-C in fzf
		if errors.As(err, &exitErr) && (exitErr.ExitCode() == 1 || exitErr.ExitCode() == 130) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("%s failed: %w", c.name, err)
	}

	return parseChoice(output)
}

func parseChoice(output []byte) (string, error) {
	result := strings.TrimSpace(string(output))
	if result == "" {
		return "", ErrCancelled
	}
	return result, nil
}

// IsCancelled reports whether err means the user backed out.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
