package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/hochfrequenz/automation-portal/internal/apiclient"
	"github.com/hochfrequenz/automation-portal/internal/domain"
	"github.com/hochfrequenz/automation-portal/internal/view"
)

var (
	execStatus   string
	execProduct  string
	execFrom     string
	execTo       string
	execPage     int
	execPageSize int
	execRecent   int
	logsStep     string
)

func init() {
	executionsCmd := &cobra.Command{
		Use:     "executions",
		Aliases: []string{"exec", "runs"},
		Short:   "Browse pipeline execution history",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List executions, newest first",
		RunE:  runExecutionsList,
	}
	listCmd.Flags().StringVar(&execStatus, "status", "", "status, any synonym (e.g. failed, error)")
	listCmd.Flags().StringVar(&execProduct, "product", "", "product name contains")
	listCmd.Flags().StringVar(&execFrom, "from", "", "started on or after (YYYY-MM-DD or RFC3339)")
	listCmd.Flags().StringVar(&execTo, "to", "", "started on or before (YYYY-MM-DD or RFC3339)")
	listCmd.Flags().IntVar(&execPage, "page", 1, "page number")
	listCmd.Flags().IntVar(&execPageSize, "page-size", view.DefaultPageSize, "rows per page")
	listCmd.Flags().IntVar(&execRecent, "recent", 0, "only fetch the N most recent executions")
	executionsCmd.AddCommand(listCmd)

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize execution health per product",
		RunE:  runExecutionsSummary,
	}
	summaryCmd.Flags().StringVar(&execStatus, "status", "", "status, any synonym (e.g. failed, error)")
	summaryCmd.Flags().StringVar(&execFrom, "from", "", "started on or after (YYYY-MM-DD or RFC3339)")
	summaryCmd.Flags().StringVar(&execTo, "to", "", "started on or before (YYYY-MM-DD or RFC3339)")
	executionsCmd.AddCommand(summaryCmd)

	executionsCmd.AddCommand(&cobra.Command{
		Use:   "get ID",
		Short: "Show an execution and its steps",
		Args:  cobra.ExactArgs(1),
		RunE:  runExecutionsGet,
	})
	executionsCmd.AddCommand(&cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel a pending or running execution",
		Args:  cobra.ExactArgs(1),
		RunE:  runExecutionsCancel,
	})
	executionsCmd.AddCommand(&cobra.Command{
		Use:   "retry ID",
		Short: "Start a new run of a finished execution",
		Args:  cobra.ExactArgs(1),
		RunE:  runExecutionsRetry,
	})

	logsCmd := &cobra.Command{
		Use:   "logs ID",
		Short: "Print execution logs",
		Args:  cobra.ExactArgs(1),
		RunE:  runExecutionsLogs,
	}
	logsCmd.Flags().StringVar(&logsStep, "step", "", "only this step (index or name)")
	executionsCmd.AddCommand(logsCmd)

	rootCmd.AddCommand(executionsCmd)
}

func executionFilter() (view.ExecutionFilter, error) {
	f := view.ExecutionFilter{Status: execStatus, ProductName: execProduct}
	if execFrom != "" {
		f.From = domain.ParseTimestamp(execFrom)
		if f.From.IsZero() {
			return f, fmt.Errorf("invalid --from %q", execFrom)
		}
	}
	if execTo != "" {
		f.To = domain.ParseTimestamp(execTo)
		if f.To.IsZero() {
			return f, fmt.Errorf("invalid --to %q", execTo)
		}
		// a bare date includes the whole day
		if len(execTo) == len("2006-01-02") {
			f.To = f.To.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return f, nil
}

func runExecutionsList(cmd *cobra.Command, args []string) error {
	filter, err := executionFilter()
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(a *app) error {
		var execs []domain.Execution
		if execRecent > 0 {
			execs, err = a.client.Executions().Recent(cmd.Context(), execRecent)
		} else {
			execs, err = a.client.Executions().List(cmd.Context(), nil)
		}
		if err != nil {
			return err
		}

		list := view.NewExecutionList(execs)
		list.SetPageSize(execPageSize)
		list.SetFilter(filter)
		list.SetPage(execPage)
		page := list.Current()

		now := time.Now()
		rows := make([]table.Row, 0, len(page.Items))
		for _, e := range page.Items {
			rows = append(rows, table.Row{
				e.ExecutionID, e.ProductName, statusText(e.Status),
				fmt.Sprintf("%d/%d", e.SuccessfulSteps, e.TotalSteps),
				view.FormatPercent(e.PipelineProgress()),
				view.FormatElapsed(e.StartedAt, e.FinishedAt, now),
				view.FormatTimestamp(e.StartedAt),
			})
		}
		if err := a.out.table(page.Items, table.Row{"ID", "Product", "Status", "Steps", "Progress", "Duration", "Started"}, rows); err != nil {
			return err
		}
		if page.TotalItems > 0 {
			a.out.line("page %d of %d, %d executions, health %s", page.Number, page.TotalPages, page.TotalItems,
				view.FormatPercent(domain.HealthScore(list.Filtered())))
		}
		return nil
	})
}

func runExecutionsGet(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		e, err := a.client.Executions().Get(cmd.Context(), args[0])
		if apiclient.IsNotFound(err) {
			return fmt.Errorf("no execution %q, see 'portalctl executions list': %w", args[0], err)
		}
		if err != nil {
			return err
		}
		return printExecution(a, e)
	})
}

func runExecutionsSummary(cmd *cobra.Command, args []string) error {
	filter, err := executionFilter()
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(a *app) error {
		execs, err := a.client.Executions().List(cmd.Context(), nil)
		if err != nil {
			return err
		}
		list := view.NewExecutionList(execs)
		list.SetFilter(filter)

		groups := domain.GroupByProduct(list.Filtered())
		names := make([]string, 0, len(groups))
		for name := range groups {
			names = append(names, name)
		}
		sort.Strings(names)

		type productSummary struct {
			Product    string
			Runs       int
			Failed     int
			Health     int
			LastStatus domain.StandardStatus
		}
		summaries := make([]productSummary, 0, len(names))
		rows := make([]table.Row, 0, len(names))
		for _, name := range names {
			runs := groups[name]
			failed := 0
			for _, e := range runs {
				if e.Status.IsFailure() {
					failed++
				}
			}
			// runs are newest first
			ps := productSummary{Product: name, Runs: len(runs), Failed: failed, Health: domain.HealthScore(runs), LastStatus: runs[0].Status}
			summaries = append(summaries, ps)
			rows = append(rows, table.Row{name, ps.Runs, ps.Failed, view.FormatPercent(ps.Health), statusText(ps.LastStatus)})
		}
		return a.out.table(summaries, table.Row{"Product", "Runs", "Failed", "Health", "Last"}, rows)
	})
}

func printExecution(a *app, e domain.Execution) error {
	if a.out.json {
		return a.out.JSON(e)
	}
	now := time.Now()
	a.out.line("%s  %s  %s", e.ExecutionID, e.ProductName, statusText(e.Status))
	a.out.line("started %s, %s, triggered by %s", view.FormatTimestamp(e.StartedAt),
		view.FormatElapsed(e.StartedAt, e.FinishedAt, now), orNA(e.TriggeredBy))
	if name := e.ActiveStepName(); name != "" {
		a.out.line("current step: %s", name)
	}
	if err := e.CheckCounts(); err != nil {
		a.log.Warn(err.Error())
	}

	rows := make([]table.Row, 0, len(e.Steps))
	for _, s := range e.Steps {
		rows = append(rows, table.Row{
			s.StepIndex, s.DisplayName(), statusText(s.Status), view.FormatDuration(s.Duration), s.RetryCount, s.ErrorDetails,
		})
	}
	if err := a.out.table(e, table.Row{"#", "Step", "Status", "Duration", "Retries", "Error"}, rows); err != nil {
		return err
	}
	for _, s := range e.Steps {
		if s.HasInput() {
			printPayload(a, s, "input", s.Input)
		}
		if s.HasOutput() {
			printPayload(a, s, "output", s.Output)
		}
	}
	return nil
}

// payloadLines caps each step payload printed by executions get
const payloadLines = 20

func printPayload(a *app, s domain.StepRun, label string, raw []byte) {
	a.out.line("")
	a.out.line("%s %s:", s.DisplayName(), label)
	for _, line := range view.FormatPayload(raw, payloadLines) {
		a.out.line("  %s", line)
	}
}

func runExecutionsCancel(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		e, err := a.client.Executions().Cancel(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if a.out.json {
			return a.out.JSON(e)
		}
		a.out.line("%s is now %s", e.ExecutionID, statusText(e.Status))
		return nil
	})
}

func runExecutionsRetry(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		e, err := a.client.Executions().Retry(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if a.out.json {
			return a.out.JSON(e)
		}
		a.out.line("queued %s (%s)", e.ExecutionID, statusText(e.Status))
		return nil
	})
}

func runExecutionsLogs(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		logs, err := a.client.Executions().Logs(cmd.Context(), args[0], logsStep)
		if err != nil {
			return err
		}
		if a.out.json {
			return a.out.JSON(logs)
		}
		fmt.Fprintln(a.out.w, strings.Join(logs.Lines, "\n"))
		if logs.HasMore {
			a.out.line("... more lines available")
		}
		return nil
	})
}

func orNA(s string) string {
	if s == "" {
		return view.NotAvailable
	}
	return s
}
