package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// stdout receives command output; tests swap it for a buffer
var stdout io.Writer = os.Stdout

var (
	configPath string
	outputMode string
	logLevel   string
	baseURL    string
	rootCmd    = &cobra.Command{
		Use:   "portalctl",
		Short: "Automation Portal - manage automation products and pipeline runs",
		Long: `portalctl talks to the automation portal REST API. It manages automation
products, browses the pipeline execution history and shows the dashboard
counters, either as plain commands or as an interactive terminal dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&outputMode, "output", "o", "table", "output format: table or json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL, overrides config and environment")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
