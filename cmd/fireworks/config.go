package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fireworks/internal/config"
)

var initForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the config file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration (file plus FIREWORKS_* overrides)",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		exitOnError(err)
		data, err := cfg.YAML()
		exitOnError(err)
		fmt.Print(string(data))
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := os.Stat(cfgFile); err == nil && !initForce {
			exitOnError(fmt.Errorf("%s already exists (use --force to overwrite)", cfgFile))
		}
		exitOnError(config.DefaultConfig().Save(cfgFile))
		fmt.Printf("Wrote %s\n", cfgFile)
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
