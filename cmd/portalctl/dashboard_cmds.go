package main

import (
	"context"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/hochfrequenz/automation-portal/internal/domain"
	"github.com/hochfrequenz/automation-portal/internal/view"
)

var activitiesLimit int

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard counters",
		RunE:  runStats,
	})

	activitiesCmd := &cobra.Command{
		Use:   "activities",
		Short: "Show the recent activity feed",
		RunE:  runActivities,
	}
	activitiesCmd.Flags().IntVar(&activitiesLimit, "limit", 10, "number of entries")
	rootCmd.AddCommand(activitiesCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		stats, err := a.client.Dashboard().Stats(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([]table.Row, 0, len(domain.StatCards))
		for _, card := range domain.StatCards {
			rows = append(rows, table.Row{card.Title, card.Value(stats), card.Subtitle})
		}
		return a.out.table(stats, table.Row{"Counter", "Value", "Description"}, rows)
	})
}

func runActivities(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		return printActivities(cmd.Context(), a, activitiesLimit)
	})
}

func printActivities(ctx context.Context, a *app, limit int) error {
	acts, err := a.client.Dashboard().Activities(ctx, limit)
	if err != nil {
		return err
	}
	now := time.Now()
	rows := make([]table.Row, 0, len(acts))
	for _, act := range acts {
		rows = append(rows, table.Row{view.RelativeTime(act.Timestamp, now), act.Type, act.Title, act.Description})
	}
	return a.out.table(acts, table.Row{"When", "Type", "Title", "Description"}, rows)
}
