package cmd

import (
	"errors"
	"os"

	"capgate/internal/cli"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeUnreachable indicates the capgate server could not be reached.
	ExitCodeUnreachable = 2
)

// rootCmd represents the base command for the capgate application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "capgate",
	Short: "Serve a large CRM operation catalog to LLM clients over MCP",
	Long: `capgate registers several hundred CRM operations grouped into categories
and serves them over the Model Context Protocol. Clients discover what exists
with a small set of meta-tools and enable only the categories they need,
keeping the tool list within their context budget.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "capgate version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	var connErr *cli.ConnectionError
	if errors.As(err, &connErr) {
		return ExitCodeUnreachable
	}
	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}
