package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lvim-tech/snapassist/pkg/config"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved settings and validate them",
		Long: `Print the resolved paths and image/backup settings, then validate the
configuration. Problems are reported as text; the exit status is always 0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd, a)
		},
	}
}

func newValidateCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Create the screenshot directories and check the settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.load(cmd)
			if err != nil {
				return err
			}

			errs := cfg.Validate()
			printValidation(cmd.OutOrStdout(), errs)

			for _, e := range errs {
				a.logger.WithField("problem", e).Debug("validation failed")
			}
			if strict && len(errs) > 0 {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit with status 1 when validation fails")
	return cmd
}

// runShow reports every problem as text, including a config that fails to
// load, and never fails the command.
func runShow(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()

	cfg, err := a.load(cmd)
	if err != nil {
		a.logger.WithError(err).Debug("config not loaded")
		printValidation(out, []string{err.Error()})
		return nil
	}

	printSummary(out, cfg)
	fmt.Fprintln(out)
	printValidation(out, cfg.Validate())
	return nil
}

func printSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "snapassist configuration:")
	fmt.Fprintf(w, "  base directory:     %s\n", cfg.BaseDir)
	fmt.Fprintf(w, "  screenshots:        %s\n", cfg.ScreenshotsDir())
	fmt.Fprintf(w, "  current screenshot: %s\n", cfg.CurrentScreenshotPath())
	fmt.Fprintf(w, "  image format:       %s\n", cfg.Image.Format)
	fmt.Fprintf(w, "  backups enabled:    %t\n", cfg.Backup.Enabled)
	fmt.Fprintf(w, "  max backups:        %s\n", cfg.MaxBackupsLabel())
}

func printValidation(w io.Writer, errs []string) {
	if len(errs) == 0 {
		fmt.Fprintln(w, "✓ configuration is valid")
		return
	}

	fmt.Fprintln(w, "configuration errors:")
	for _, e := range errs {
		fmt.Fprintf(w, "  - %s\n", e)
	}
}
