package main

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lvim-tech/snapassist/internal/logging"
	"github.com/lvim-tech/snapassist/pkg/config"
	"github.com/lvim-tech/snapassist/pkg/launcher"
)

const version = "0.1.0"

// errReported makes the command exit non-zero after it already printed why.
var errReported = errors.New("reported")

// app carries what the subcommands share. The config is loaded on first use
// so that init and version work even when the config is broken.
type app struct {
	configFile string
	debug      bool

	cfg    *config.Config
	logger *logrus.Logger

	newLauncher func(name string) (launcher.Launcher, error)
}

func (a *app) load(cmd *cobra.Command) (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	// Warnings from loading itself go through a logger built from the flag alone.
	a.logger = logging.New(cmd.ErrOrStderr(), a.debug)

	var opts []config.Option
	opts = append(opts, config.WithLogger(a.logger))
	if a.configFile != "" {
		opts = append(opts, config.WithFile(a.configFile))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Features.Debug {
		a.logger.SetLevel(logrus.DebugLevel)
	}
	a.logger.WithField("base_dir", cfg.BaseDir).Debug("config loaded")

	a.cfg = cfg
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&app{newLauncher: launcher.New})
}

func newRootCmdWith(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "snapassist",
		Short: "Screenshot helper configuration",
		Long: `snapassist loads and checks the screenshot helper configuration.

Settings come from the built-in defaults, then ~/.config/snapassist/config.toml
(or /etc/snapassist/config.toml), then SNAPASSIST_* environment variables.
Without a subcommand it behaves like "snapassist show".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd, a)
		},
	}

	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "config file to use instead of the user/system config")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newShowCmd(a),
		newValidateCmd(a),
		newInitCmd(),
		newConfigCmd(a),
		newBackupCmd(a),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "snapassist version %s\n", version)
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default config to ~/.config/snapassist/config.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.InitUserConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config initialized at: %s\n", path)
			fmt.Fprintln(out, "\nEdit it to customize snapassist; restart the helper afterwards.")
			return nil
		},
	}
}
