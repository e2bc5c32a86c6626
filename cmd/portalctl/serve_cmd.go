package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hochfrequenz/automation-portal/internal/logger"
	"github.com/hochfrequenz/automation-portal/web/api"
)

var (
	servePort   int
	serveHost   string
	serveSecret string
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve-mock",
		Short: "Run a mock automation API with demo data",
		Long: `serve-mock starts an in-memory stand-in for the automation portal REST API,
mounted under /api, with the runtime config document at /config.json.
Sign in with admin / admin.`,
		RunE: runServe,
	}
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (default from config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "host to bind (default from config)")
	serveCmd.Flags().StringVar(&serveSecret, "secret", "", "JWT signing secret (random when empty)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	level := cfg.General.LogLevel
	if logLevel == "" {
		level = "info"
	}
	log, err := logger.New(logger.Config{Level: level})
	if err != nil {
		return err
	}
	defer log.Sync()

	host, port := cfg.Web.Host, cfg.Web.Port
	if serveHost != "" {
		host = serveHost
	}
	if servePort != 0 {
		port = servePort
	}
	addr := fmt.Sprintf("%s:%d", host, port)

	srv := api.NewServer(api.Options{
		Addr:   addr,
		Secret: []byte(serveSecret),
		Log:    log,
	})
	fmt.Fprintf(stdout, "Mock API at %s, runtime config at http://%s/config.json\n", srv.BaseURL(addr), addr)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}
