/*
	Copyright 2023 Markus Papenbrock
*/

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mpapenbr/f1-strategy-sim-go/log"
	compoundCmd "github.com/mpapenbr/f1-strategy-sim-go/pkg/cmd/compound"
	racesCmd "github.com/mpapenbr/f1-strategy-sim-go/pkg/cmd/races"
	simulateCmd "github.com/mpapenbr/f1-strategy-sim-go/pkg/cmd/simulate"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/config"
	"github.com/mpapenbr/f1-strategy-sim-go/version"
)

const envPrefix = "F1SIM"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "f1sim",
	Short:   "Race strategy estimation based on historical tyre degradation",
	Long:    ``,
	Version: version.FullVersion,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.f1sim.yml)")

	rootCmd.PersistentFlags().StringVar(&config.ArchiveURL, "archive-url",
		"http://localhost:8721",
		"Base URL of the session archive API")
	rootCmd.PersistentFlags().StringVar(&config.ArchiveTimeout, "archive-timeout",
		"60s",
		"Timeout for session archive requests")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level",
		"info",
		"Sets the log level (zap log level values)")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat, "log-format",
		"json",
		"Controls the log output format (json, text)")
	rootCmd.PersistentFlags().StringVar(&config.LogConfig, "log-config", "",
		"Log config file with per logger filter rules")

	// add commands here
	rootCmd.AddCommand(simulateCmd.NewSimulateCmd())
	rootCmd.AddCommand(compoundCmd.NewCompoundCmd())
	rootCmd.AddCommand(racesCmd.NewRacesCmd())
}

func setupLogger() {
	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %s, using info\n", config.LogLevel)
		level = log.InfoLevel
	}
	var logger *log.Logger
	switch {
	case config.LogConfig != "":
		cfg, cfgErr := log.LoadConfig(config.LogConfig)
		if cfgErr != nil {
			fmt.Fprintf(os.Stderr, "Could not load log config: %v\n", cfgErr)
			logger = log.New(os.Stderr, level)
		} else {
			if parsed, pErr := log.ParseLevel(cfg.DefaultLevel); pErr == nil {
				level = parsed
			}
			logger = log.NewWithFilters(os.Stderr, level, cfg.Filters)
		}
	case config.LogFormat == "text":
		logger = log.DevLogger(os.Stderr, level)
	default:
		logger = log.New(os.Stderr, level)
	}
	log.ResetDefault(logger)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".f1sim" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".f1sim")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --favorite-color to F1SIM_FAVORITE_COLOR
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}
