// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"dataweb/cli/internal/config"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change saved settings",
	Long: `The config command manages the settings file. Values saved here are read on
every run; environment variables and flags still take precedence.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.Path()
		if err != nil {
			return err
		}
		c, err := config.LoadFile(p)
		if err != nil {
			return err
		}
		pterm.Fprintln(os.Stdout, pterm.Gray(p))
		return printConfig(os.Stdout, c)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Save a setting",
	Long: `The set command stores one setting in the settings file. Omitting the value
resets the setting to its default.

Keys: ` + strings.Join(config.Keys, ", "),
	Example: `  dataweb config set api-url https://datasets.example.org/api
  dataweb config set timeout 45s`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := ""
		if len(args) == 2 {
			value = args[1]
		}
		c, err := saveSetting(args[0], value)
		if err != nil {
			return err
		}
		v, _ := config.Get(c, args[0])
		if v == "" {
			v = "(default)"
		}
		fmt.Printf("✅ %s = %s\n", args[0], v)
		return nil
	},
}

// saveSetting applies key=value to the settings file alone, so environment
// overrides are never written back.
func saveSetting(key, value string) (config.Config, error) {
	p, err := config.Path()
	if err != nil {
		return config.Config{}, err
	}
	c, err := config.LoadFile(p)
	if err != nil {
		return c, err
	}
	if err := config.Set(&c, key, value); err != nil {
		return c, err
	}
	if err := config.Save(c); err != nil {
		return c, fmt.Errorf("save settings: %w", err)
	}
	return c, nil
}

func printConfig(w io.Writer, c config.Config) error {
	data := pterm.TableData{{"Key", "Value"}}
	for _, k := range config.Keys {
		v, err := config.Get(c, k)
		if err != nil {
			return err
		}
		if v == "" {
			v = "-"
		}
		data = append(data, []string{k, v})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd)
}
