package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/Kaikei-e/Alt-sub017/internal/models"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	unreadColor  = color.New(color.FgYellow, color.Bold)
	clearColor   = color.New(color.FgGreen)
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func printFeedStatsTable(w io.Writer, s *models.FeedStatsSummary) error {
	return renderTable(w, []string{"Metric", "Amount"}, [][]string{
		{"feeds", strconv.Itoa(s.FeedAmount.Amount)},
		{"summarized", strconv.Itoa(s.SummarizedFeed.Amount)},
	})
}

func printDetailedStatsTable(w io.Writer, s *models.DetailedFeedStatsSummary) error {
	return renderTable(w, []string{"Metric", "Amount"}, [][]string{
		{"feeds", strconv.Itoa(s.FeedAmount.Amount)},
		{"articles", strconv.Itoa(s.TotalArticles.Amount)},
		{"unsummarized", strconv.Itoa(s.UnsummarizedArticles.Amount)},
	})
}

func printUnreadCount(w io.Writer, r *models.UnreadCountResponse) error {
	c := clearColor
	if r.Count > 0 {
		c = unreadColor
	}
	_, err := fmt.Fprintf(w, "Unread: %s\n", c.Sprint(r.Count))
	return err
}

func printTrendTable(w io.Writer, r *models.TrendDataResponse) error {
	if _, err := headingColor.Fprintf(w, "Window %s (%s)\n", r.Window, r.Granularity); err != nil {
		return err
	}
	if len(r.DataPoints) == 0 {
		_, err := fmt.Fprintln(w, "No activity in this window.")
		return err
	}

	rows := make([][]string, 0, len(r.DataPoints))
	for _, p := range r.DataPoints {
		rows = append(rows, []string{
			p.Timestamp,
			strconv.Itoa(p.Articles),
			strconv.Itoa(p.Summarized),
			strconv.Itoa(p.FeedActivity),
		})
	}
	return renderTable(w, []string{"Timestamp", "Articles", "Summarized", "Feed Activity"}, rows)
}
