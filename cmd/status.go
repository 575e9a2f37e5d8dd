package cmd

import (
	"context"

	"capgate/internal/app"
	"capgate/internal/cli"

	"github.com/spf13/cobra"
)

var (
	statusOpts     offlineOptions
	statusEndpoint string
)

// statusCmd reports the health of a running server.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of a running capgate server",
	Long: `Queries the /healthz endpoint of a running capgate server and prints its
mode and how many operations are currently enabled.

The endpoint is derived from the server configuration unless --endpoint is
given. Servers using the stdio transport have no health endpoint.

Examples:
  capgate status
  capgate status --endpoint http://localhost:8090/healthz`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	printer, err := statusOpts.printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	endpoint := statusEndpoint
	if endpoint == "" {
		cfg := app.NewConfig(statusOpts.debug, statusOpts.configPath)
		cfg.Quiet = true
		appCfg, err := app.LoadConfiguration(cfg)
		if err != nil {
			return err
		}
		endpoint = cli.DetectHealthEndpoint(appCfg.Server)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	health, err := cli.FetchHealth(ctx, endpoint)
	if err != nil {
		return err
	}
	return printer.Health(endpoint, health)
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusEndpoint, "endpoint", "", "Health endpoint URL (default: derived from configuration)")
	statusCmd.Flags().StringVarP(&statusOpts.outputFormat, "output", "o", "table", "Output format (table, wide, json)")
	statusCmd.Flags().BoolVar(&statusOpts.noColor, "no-color", false, "Disable colored output")
	statusCmd.Flags().StringVar(&statusOpts.configPath, "config-path", "", "Custom configuration directory path")
	statusCmd.Flags().BoolVar(&statusOpts.debug, "debug", false, "Enable debug logging")
}
