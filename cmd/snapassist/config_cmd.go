package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvim-tech/snapassist/pkg/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "dump",
			Short: "Print every resolved setting as key = value",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := a.load(cmd)
				if err != nil {
					return err
				}

				flat, err := cfg.Flatten()
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, key := range config.FlattenedKeys(flat) {
					fmt.Fprintf(out, "%s = %s\n", key, formatValue(flat[key]))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "default",
			Short: "Print the built-in default config",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprint(cmd.OutOrStdout(), config.DefaultConfigContent())
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file locations",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "user:   %s\n", config.UserConfigPath())
				fmt.Fprintf(out, "system: %s\n", config.SystemConfigPath())
			},
		},
	)

	return cmd
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}
