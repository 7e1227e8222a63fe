// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the kinact CLI.
// See docs/ARCHITECTURE § Pipeline Interface.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the kinact CLI.
var rootCmd = &cobra.Command{
	Use:   "kinact",
	Short: "Kinase activity inference from phosphoproteomics",
	Long: `kinact infers relative kinase activity from a quantitative
phosphoproteomics experiment. It normalizes the phosphosite table, joins
it against a kinase-substrate reference set, and scores each kinase with
an enrichment z-score, one-tailed p-value, and Benjamini-Hochberg FDR
(Casado et al. 2013).

Each pipeline stage is reachable as a subcommand: normalize expands the
raw site table, reference manages the annotation set, and score runs the
full analysis and writes the exports.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./kinact.yaml or ~/.config/kinact/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("kinact")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "kinact"))
		}
	}

	viper.SetEnvPrefix("KINACT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
