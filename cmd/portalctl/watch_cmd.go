package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hochfrequenz/automation-portal/internal/monitor"
	"github.com/hochfrequenz/automation-portal/internal/notify"
)

var (
	watchInterval string
	watchLimit    int
	watchOnce     bool
)

func init() {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Notify when pipeline runs finish",
		Long: `watch polls the most recent executions and sends a desktop and/or Slack
notification whenever one reaches success, failed or cancelled. Notification
targets come from the [notifications] section of the config file.`,
		RunE: runWatch,
	}
	watchCmd.Flags().StringVar(&watchInterval, "interval", "", "poll interval (default from config)")
	watchCmd.Flags().IntVar(&watchLimit, "limit", monitor.DefaultLimit, "executions to inspect per poll")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "poll once and exit")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return withApp(ctx, func(a *app) error {
		if watchInterval != "" {
			a.cfg.Monitor.PollInterval = watchInterval
		}
		notifier := notify.NewMultiNotifier(
			notify.NewDesktopNotifier(a.cfg.Notifications.Desktop),
			notify.NewSlackNotifier(a.cfg.Notifications.SlackWebhook, ""),
		)
		w := monitor.New(a.client.Executions(), a.store, notifier, a.log, monitor.Options{
			Interval: a.cfg.PollInterval(),
			Limit:    watchLimit,
		})

		if watchOnce {
			transitions, err := w.Poll(ctx)
			if err != nil {
				return err
			}
			for _, t := range transitions {
				a.out.line("%s %s: %s -> %s", t.Execution.ExecutionID, t.Execution.ProductName, t.From, t.To)
			}
			return nil
		}

		a.out.line("Watching executions every %s, press Ctrl+C to stop", a.cfg.PollInterval())
		return w.Run(ctx)
	})
}
