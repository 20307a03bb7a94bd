package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Kaikei-e/Alt-sub017/internal/api"
)

// Set by the linker at release time.
var (
	version = "dev"
	commit  = "none"
)

const defaultServer = "http://localhost:8080"

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:           "statsctl",
	Short:         "Inspect feed statistics served by feedstats.",
	Long:          `statsctl queries the /v1/feeds endpoints of a feedstats service and prints the results as tables or JSON.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if viper.GetBool("no-color") {
			color.NoColor = true
		}
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(detailedCmd)
	rootCmd.AddCommand(unreadCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("server", defaultServer, "Base URL of the feedstats HTTP server")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().Bool("json", false, "Print raw JSON instead of a table")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(fmt.Sprintf("binding root flags: %v", err))
	}

	unreadCmd.Flags().String("since", "", "Count unread feeds since this RFC 3339 time (default: start of today, UTC)")
	trendsCmd.Flags().String("window", "24h", "Trend window: 4h, 24h, 3d or 7d")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			_, _ = color.New(color.FgYellow).Fprintf(rootCmd.ErrOrStderr(), "Warning: cannot read config file: %v\n", err)
		}
	}

	viper.SetEnvPrefix("STATSCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server", defaultServer)
	viper.SetDefault("timeout", 30*time.Second)
}

func newClient() *api.StatsClient {
	return api.NewStatsClient(viper.GetString("server"), api.WithTimeout(viper.GetDuration("timeout")))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
