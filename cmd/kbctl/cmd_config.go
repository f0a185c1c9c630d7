package main

import (
	"fmt"

	"github.com/ponyatov/kb/cmd/ui"
	"github.com/ponyatov/kb/pkg/common/logger"
	"github.com/ponyatov/kb/pkg/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit kb configuration",
		Long: `Configuration is resolved from, highest precedence first:
  command-line   -c key=value and flags such as --demo
  project        ./.kb/config.json
  user           <user config dir>/kb/config.json
  builtin        defaults

Known keys: demo.variant, output.format, log.level, log.format.`,
	}

	cmd.AddCommand(newConfigListCmd(a))
	cmd.AddCommand(newConfigGetCmd(a))
	cmd.AddCommand(newConfigSetCmd(a))
	cmd.AddCommand(newConfigUnsetCmd(a))

	return cmd
}

func newConfigListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every effective configuration value and its level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Header(" kb configuration "))
			return ui.ConfigTable(out, a.sess.Config.List())
		},
	}
}

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the effective value of KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := a.sess.Config.Get(args[0])
			if entry == nil {
				return config.NewNotFoundError(args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), entry.AsString())
			return nil
		},
	}
}

func newConfigSetCmd(a *app) *cobra.Command {
	var project bool

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Write KEY to the user (or project) configuration file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := writeLevel(project)
			if err := a.sess.Config.Set(args[0], args[1], level); err != nil {
				return err
			}

			path, _ := a.sess.Config.StorePath(level)
			logger.FromContext(cmd.Context()).Debug("configuration written", "key", args[0], "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessMessage("Set", args[0]+"="+args[1], path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&project, "project", false, "Write ./.kb/config.json instead of the user file")

	return cmd
}

func newConfigUnsetCmd(a *app) *cobra.Command {
	var project bool

	cmd := &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove KEY from the user (or project) configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := writeLevel(project)
			if err := a.sess.Config.Unset(args[0], level); err != nil {
				return err
			}

			path, _ := a.sess.Config.StorePath(level)
			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessMessage("Unset", args[0], path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&project, "project", false, "Edit ./.kb/config.json instead of the user file")

	return cmd
}

func writeLevel(project bool) config.ConfigLevel {
	if project {
		return config.ProjectLevel
	}
	return config.UserLevel
}
