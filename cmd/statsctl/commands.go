package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Kaikei-e/Alt-sub017/internal/models"
)

// statsCmd prints the feed and summary counts.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the number of feeds and summarized feeds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		summary, err := newClient().FetchFeedStats(commandContext(cmd))
		if err != nil {
			return fmt.Errorf("fetching feed stats: %w", err)
		}
		if viper.GetBool("json") {
			return printJSON(cmd.OutOrStdout(), summary)
		}
		return printFeedStatsTable(cmd.OutOrStdout(), summary)
	},
}

// detailedCmd prints feed and article level counts.
var detailedCmd = &cobra.Command{
	Use:   "detailed",
	Short: "Show feed, article and unsummarized article counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		summary, err := newClient().FetchDetailedFeedStats(commandContext(cmd))
		if err != nil {
			return fmt.Errorf("fetching detailed feed stats: %w", err)
		}
		if viper.GetBool("json") {
			return printJSON(cmd.OutOrStdout(), summary)
		}
		return printDetailedStatsTable(cmd.OutOrStdout(), summary)
	},
}

// unreadCmd prints the unread count.
var unreadCmd = &cobra.Command{
	Use:   "unread",
	Short: "Show how many feeds are unread",
	Long: `Count feeds that are still unread.

Examples:
  # Unread since the start of today (UTC)
  statsctl unread

  # Unread since a given instant
  statsctl unread --since 2024-01-01T00:00:00Z`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var since time.Time
		if raw, _ := cmd.Flags().GetString("since"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return fmt.Errorf("invalid --since %q: expected RFC 3339", raw)
			}
			since = parsed
		}

		resp, err := newClient().FetchUnreadCount(commandContext(cmd), since)
		if err != nil {
			return fmt.Errorf("fetching unread count: %w", err)
		}
		if viper.GetBool("json") {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		return printUnreadCount(cmd.OutOrStdout(), resp)
	},
}

// trendsCmd prints one trend series.
var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show article, summary and feed activity over a time window",
	Long: `Show the trend series for one window.

Windows of 24h or less are bucketed hourly; 3d and 7d are bucketed daily.

Examples:
  statsctl trends --window 4h
  statsctl trends --window 7d --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		raw, _ := cmd.Flags().GetString("window")
		window, err := models.ParseTimeWindow(raw)
		if err != nil {
			return fmt.Errorf("invalid --window %q: valid values are 4h, 24h, 3d, 7d", raw)
		}

		resp, err := newClient().FetchTrendStats(commandContext(cmd), window)
		if err != nil {
			return fmt.Errorf("fetching trend stats: %w", err)
		}
		if viper.GetBool("json") {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		return printTrendTable(cmd.OutOrStdout(), resp)
	},
}

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of statsctl.",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("statsctl\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
