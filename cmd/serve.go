package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Rana718/ddlview/internal/config"
	"github.com/Rana718/ddlview/internal/studio"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"studio"},
	Short:   "Serve the parser over HTTP",
	Long: `
Start the ddlview HTTP API. It parses posted SQL, serves the configured
schema as JSON or SQL, and caches parse results in memory, or in Redis when
the variable named by cache.redis_url_env is set.

Endpoints:
  POST /api/parse          parse raw SQL or {"sql": "..."}
  GET  /api/schema         parsed schema_path
  GET  /api/schema.sql     normalized CREATE TABLE download
  GET  /api/tables         table names and field counts
  GET  /api/tables/:name   one table
  GET  /api/health         cache backend status

Examples:
  ddlview serve
  ddlview serve --port 3000 --browser
  ddlview serve --redis redis://localhost:6379/0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		if redisURL, _ := cmd.Flags().GetString("redis"); redisURL != "" {
			os.Setenv(cfg.Cache.RedisURLEnv, redisURL)
		}

		port := cfg.Studio.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}
		browser, _ := cmd.Flags().GetBool("browser")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var accessLog io.Writer
		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			accessLog = os.Stdout
		}

		server, err := studio.New(ctx, cfg, port, accessLog)
		if err != nil {
			return err
		}

		go func() {
			<-ctx.Done()
			fmt.Println("\n👋 Shutting down")
			server.Shutdown()
		}()

		return server.Start(browser)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 5555, "Port to listen on (default from config)")
	serveCmd.Flags().BoolP("browser", "b", false, "Open the schema endpoint in a browser")
	serveCmd.Flags().String("redis", "", "Redis URL for the parse cache (overrides config/env)")
	serveCmd.Flags().BoolP("quiet", "q", false, "Disable the access log")
}
