package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

var searchOpts offlineOptions

// searchCmd searches operation names and descriptions.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search operations by name or description",
	Long: `Searches every registered operation, enabled or not, for a
case-insensitive substring of its name or description. Matches are grouped
by category in registration order.

Examples:
  capgate search invoice
  capgate search "free slots" --output json`,
	Args:                  cobra.MinimumNArgs(1),
	DisableFlagsInUseLine: true,
	RunE:                  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	printer, err := searchOpts.printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	reg, err := searchOpts.loadRegistry(ctx)
	if err != nil {
		return err
	}

	matches, err := reg.Search(query)
	if err != nil {
		return err
	}
	return printer.Search(query, matches)
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchOpts.outputFormat, "output", "o", "table", "Output format (table, wide, json)")
	searchCmd.Flags().BoolVar(&searchOpts.noColor, "no-color", false, "Disable colored output")
	searchCmd.Flags().StringVar(&searchOpts.configPath, "config-path", "", "Custom configuration directory path")
	searchCmd.Flags().BoolVar(&searchOpts.debug, "debug", false, "Enable debug logging")
}
