// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"parqv/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var forceInit bool

// configCmd is the parent command for all configuration-related subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage parqv configuration",
	Long: `Provides subcommands to locate, inspect and create the parqv
configuration file. Every setting is optional; missing keys keep their
defaults.`,
	// Config subcommands work on the file itself, so they skip loading it.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath()
		if err != nil {
			return err
		}
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(loaded)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}

		w := cmd.OutOrStdout()
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			dimColor.Fprintf(w, "# %s does not exist; showing defaults\n", path)
		} else {
			dimColor.Fprintf(w, "# %s\n", path)
		}
		_, err = w.Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	Long: `Writes the default configuration to the configuration file so it can
be edited. An existing file is left alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.SaveConfig(path, config.Default()); err != nil {
			return err
		}
		successColor.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "overwrite an existing configuration file")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

// configFilePath is the --config value with "~/" expanded, or the default
// location.
func configFilePath() (string, error) {
	if configPath == "" {
		return config.DefaultConfigPath()
	}
	return config.ResolvePath(configPath)
}
