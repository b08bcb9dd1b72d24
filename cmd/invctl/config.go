package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inventory-app/gqlclient/internal/config"
	"github.com/inventory-app/gqlclient/internal/logging"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change invctl settings",
	}
	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigSetCmd(a))
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := yaml.Marshal(&a.cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", a.cfgPath, b)
			return nil
		},
	}
}

func newConfigSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting in the config file",
		Long: "Change a setting in the config file. Keys are endpoint, timeout, " +
			"log_level, log_json and header.<Name>.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Environment and flag overrides must not leak into the file.
			cfg, path, err := config.Load(a.cfgPath)
			if err != nil {
				return err
			}
			if err := config.Set(&cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}
			a.log.WithFields(logging.Fields{"key": args[0], "path": path}).Debug("config saved")
			return nil
		},
	}
}
