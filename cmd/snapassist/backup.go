package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/lvim-tech/snapassist/internal/logging"
	"github.com/lvim-tech/snapassist/pkg/backup"
	"github.com/lvim-tech/snapassist/pkg/launcher"
	"github.com/lvim-tech/snapassist/pkg/notify"
)

func newBackupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage screenshot backups",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "archive",
			Short: "Copy the current screenshot into the backup directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, n, err := a.backupStore(cmd)
				if err != nil {
					return err
				}

				path, err := store.Archive(time.Now())
				if err != nil {
					a.logger.WithFields(logging.ErrField(err)).Error("backup failed")
					n.Error("Backup failed", err.Error())
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), path)
				n.Notify("Screenshot backed up", filepath.Base(path))
				return nil
			},
		},
		&cobra.Command{
			Use:   "prune",
			Short: "Delete the oldest backups beyond max_backups",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, _, err := a.backupStore(cmd)
				if err != nil {
					return err
				}

				removed, err := store.Prune()
				for _, path := range removed {
					fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", path)
				}
				if err != nil {
					return fmt.Errorf("failed to prune backups: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%d backup(s) removed\n", len(removed))
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List backups, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, _, err := a.backupStore(cmd)
				if err != nil {
					return err
				}

				entries, err := store.List()
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "no backups in %s\n", store.Dir())
					return nil
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tSIZE\tMODIFIED")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Name, e.Size, e.ModTime.Format("2006-01-02 15:04:05"))
				}
				return tw.Flush()
			},
		},
		newPickCmd(a),
	)

	return cmd
}

func newPickCmd(a *app) *cobra.Command {
	var launcherName string

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a backup from a menu and print its path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := a.backupStore(cmd)
			if err != nil {
				return err
			}

			entries, err := store.List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return fmt.Errorf("no backups in %s", store.Dir())
			}

			l, err := a.newLauncher(launcherName)
			if err != nil {
				return err
			}

			options := make([]string, 0, len(entries))
			byName := make(map[string]string, len(entries))
			for _, e := range entries {
				options = append(options, e.Name)
				byName[e.Name] = e.Path
			}

			choice, err := l.Show(options, "Backup")
			if launcher.IsCancelled(err) {
				return nil
			}
			if err != nil {
				return err
			}

			path, ok := byName[choice]
			if !ok {
				return fmt.Errorf("unknown backup: %s", choice)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&launcherName, "launcher", "l", "auto", "menu program: auto, rofi, dmenu, fzf, bemenu or fuzzel")
	return cmd
}

func (a *app) backupStore(cmd *cobra.Command) (*backup.Store, *notify.Notifier, error) {
	cfg, err := a.load(cmd)
	if err != nil {
		return nil, nil, err
	}

	store, err := backup.New(cfg, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid backup settings: %w", err)
	}

	return store, notify.New(cfg, a.logger), nil
}
