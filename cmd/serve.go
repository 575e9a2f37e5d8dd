package cmd

import (
	"context"
	"fmt"

	"capgate/internal/app"

	"github.com/spf13/cobra"
)

var (
	serveDebug      bool
	serveConfigPath string
	serveMode       string
	serveTransport  string
	servePort       int
)

// serveCmd starts the MCP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the capgate MCP server",
	Long: `Registers the CRM catalog and serves it over MCP until interrupted.

Modes:
  dynamic  Enabled operations are listed as individual tools. Enabling or
           disabling a category sends notifications/tools/list_changed.
  proxy    The tool list never changes: the discovery meta-tools plus
           execute_tool, which runs any enabled operation by name.

Transports:
  streamable-http (default), sse, stdio

Configuration:
  capgate loads config.yaml from ~/.config/capgate, or from the directory
  given with --config-path. Every setting can be overridden with CAPGATE_*
  environment variables, for example CAPGATE_CRM_API_KEY or
  CAPGATE_SERVER_MODE. Command line flags take precedence over both.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// runServe is the main entry point for the serve command
func runServe(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(serveDebug, serveConfigPath)
	cfg.Mode = serveMode
	cfg.Transport = serveTransport
	cfg.Port = servePort
	cfg.Version = GetVersion()

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable general debug logging")
	serveCmd.Flags().StringVar(&serveConfigPath, "config-path", "", "Custom configuration directory path")
	serveCmd.Flags().StringVar(&serveMode, "mode", "", "Execution mode: dynamic or proxy")
	serveCmd.Flags().StringVar(&serveTransport, "transport", "", "MCP transport: streamable-http, sse or stdio")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port for the HTTP transports")
}
