// Package cmd is for command line interactions with the analysis pipeline
package cmd

import (
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "dna-analysis",
	Short: `Find non-canonical DNA structures across a genome.
Scan for G-quadruplex repeats, run Z-Hunt predictions per chromosome,
and relate the two structure classes to each other and to promoters`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// defaults for every setting, so config.New() validates from any
// subcommand; per-command flags override these through viper.BindPFlag.
func init() {
	viper.SetDefault("min-score", 50.0)
	viper.SetDefault("min-run-length", 3)
	viper.SetDefault("max-run-length", 7)
	viper.SetDefault("max-loop-length", 7)

	viper.SetDefault("predictor", "zhunt2")
	viper.SetDefault("predictor-min-run", 12)
	viper.SetDefault("predictor-window", 8)
	viper.SetDefault("predictor-max-run", 12)
	viper.SetDefault("min-partition-mb", 1.0)
	viper.SetDefault("workers", 0)
	viper.SetDefault("poll-interval", 2*time.Second)
	viper.SetDefault("grace-period", 10*time.Second)
	viper.SetDefault("zscore-min", 300.0)
	viper.SetDefault("zscore-max", 400.0)
	viper.SetDefault("quality-column", 3)
	viper.SetDefault("sequence-column", 4)

	viper.SetDefault("promoter-upstream", 1000)
	viper.SetDefault("promoter-downstream", 1000)
	viper.SetDefault("window", 1000)
}
