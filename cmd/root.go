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

	calibrateCmd "github.com/mpapenbr/deepracer-toolkit-go/pkg/cmd/calibrate"
	migrateCmd "github.com/mpapenbr/deepracer-toolkit-go/pkg/cmd/migrate"
	rewardCmd "github.com/mpapenbr/deepracer-toolkit-go/pkg/cmd/reward"
	storeCmd "github.com/mpapenbr/deepracer-toolkit-go/pkg/cmd/store"
	trackCmd "github.com/mpapenbr/deepracer-toolkit-go/pkg/cmd/track"
	verifyCmd "github.com/mpapenbr/deepracer-toolkit-go/pkg/cmd/verify"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/config"
	"github.com/mpapenbr/deepracer-toolkit-go/version"
)

const envPrefix = "DRT"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "drt",
	Short:        "Track geometry and reward calibration toolkit for DeepRacer",
	Long:         ``,
	Version:      version.FullVersion,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:funlen // flag definitions
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "",
		"config file (default is $HOME/.drt.yml)")

	rootCmd.PersistentFlags().StringVar(&config.DB, "db",
		"postgresql://DB_USERNAME:DB_USER_PASSWORD@DB_HOST:5432/deepracer",
		"Connection string for the database")
	rootCmd.PersistentFlags().StringVar(&config.WaitForServices,
		"wait-for-services",
		"15s",
		"Duration to wait for other services to be ready")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel,
		"log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&config.SQLLogLevel,
		"sql-log-level",
		"info",
		"controls the log level for sql methods")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat,
		"log-format",
		"text",
		"controls the log output format (json, text)")
	rootCmd.PersistentFlags().StringVar(&config.LogFilter,
		"log-filter",
		"",
		"zapfilter rules, e.g. \"debug+:calibration* info+:*\"")
	rootCmd.PersistentFlags().BoolVar(&config.EnableTelemetry,
		"enable-telemetry",
		false,
		"enables telemetry")
	rootCmd.PersistentFlags().StringVar(&config.TelemetryEndpoint,
		"telemetry-endpoint",
		"localhost:4317",
		"Endpoint that receives open telemetry data (stdout prints spans)")
	rootCmd.PersistentFlags().StringVar(&config.TrackDir,
		"track-dir",
		"tracks",
		"directory for downloaded track files (empty: no local copy)")
	rootCmd.PersistentFlags().StringVar(&config.TrackBaseURL,
		"track-base-url",
		"",
		"base url of the track npy files")
	rootCmd.PersistentFlags().IntVar(&config.Workers,
		"workers",
		0,
		"number of concurrent calibration workers (0: number of CPUs)")

	// add commands here
	rootCmd.AddCommand(trackCmd.NewTrackCmd())
	rootCmd.AddCommand(calibrateCmd.NewCalibrateCmd())
	rootCmd.AddCommand(verifyCmd.NewVerifyCmd())
	rootCmd.AddCommand(rewardCmd.NewRewardCmd())
	rootCmd.AddCommand(storeCmd.NewStoreCmd())
	rootCmd.AddCommand(migrateCmd.NewMigrateCmd())
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

		// Search config in home directory with name ".drt" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".drt")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindAll(rootCmd, viper.GetViper())
}

// bindAll binds the flags of cmd and all its subcommands
func bindAll(cmd *cobra.Command, v *viper.Viper) {
	bindFlags(cmd, v)
	for _, c := range cmd.Commands() {
		bindAll(c, v)
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --track-dir to DRT_TRACK_DIR
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
