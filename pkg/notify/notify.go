// Package notify sends desktop notifications for snapassist.
// It honours the notification toggles of the loaded configuration and uses
// dunstify or notify-send, whichever is installed.
package notify

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/lvim-tech/snapassist/internal/utils"
	"github.com/lvim-tech/snapassist/pkg/config"
)

const (
	appTitle = "snapassist"

	urgencyNormal   = "normal"
	urgencyCritical = "critical"

	defaultTimeout = 5000
)

// Notifier shows notifications. The zero value is disabled.
type Notifier struct {
	Enabled bool
	// Timeout in milliseconds
	Timeout int
	// Terminal, when set, receives the message instead of a popup.
	Terminal io.Writer
	Logger   logrus.FieldLogger

	detect func() string
	run    func(name string, args ...string) error
}

// New builds a Notifier from the features section of cfg. When running in a
// terminal the messages go to stderr.
func New(cfg *config.Config, logger logrus.FieldLogger) *Notifier {
	n := &Notifier{
		Enabled: cfg.Features.Notifications,
		Timeout: cfg.Features.NotificationDuration,
		Logger:  logger,
	}
	if utils.IsTerminal() {
		n.Terminal = os.Stderr
	}
	return n
}

// Notify sends a normal notification.
func (n *Notifier) Notify(title, message string) {
	n.send(title, message, urgencyNormal)
}

// Error sends a critical notification.
func (n *Notifier) Error(title, message string) {
	n.send(title, message, urgencyCritical)
}

func (n *Notifier) send(title, message, urgency string) {
	if n == nil || !n.Enabled {
		return
	}

	if n.Terminal != nil {
		prefix := ""
		if urgency == urgencyCritical {
			prefix = "[ERROR] "
		}
		fmt.Fprintf(n.Terminal, "%s[%s] %s\n", prefix, title, message)
		return
	}

	detect := n.detect
	if detect == nil {
		detect = detectNotificationTool
	}
	tool := detect()
	if tool == "" {
		n.logger().Debug("no notification tool installed")
		return
	}

	args := buildArgs(tool, title, message, n.Timeout, urgency)
	if args == nil {
		return
	}

	run := n.run
	if run == nil {
		run = startDetached
	}
	if err := run(tool, args...); err != nil {
		n.logger().WithError(err).WithField("tool", tool).Debug("failed to send notification")
	}
}

func (n *Notifier) logger() logrus.FieldLogger {
	if n.Logger == nil {
		return logrus.StandardLogger()
	}
	return n.Logger
}

// buildArgs returns the command line for tool, or nil for an unknown tool.
func buildArgs(tool, title, message string, timeout int, urgency string) []string {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	switch tool {
	case "dunstify", "notify-send":
		return []string{
			"-a", appTitle,
			"-u", urgency,
			"-t", strconv.Itoa(timeout),
			title,
			message,
		}
	default:
		return nil
	}
}

// detectNotificationTool detects which notification tool is available
func detectNotificationTool() string {
	if utils.CommandExists("dunstify") {
		return "dunstify"
	}
	if utils.CommandExists("notify-send") {
		return "notify-send"
	}
	return ""
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	return cmd.Start()
}
