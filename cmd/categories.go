package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var categoriesOpts offlineOptions

// categoriesCmd lists the registered categories.
var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"category", "cat"},
	Short:   "List the operation categories",
	Long: `Lists every category of the CRM catalog with its operation count and
whether it starts enabled. The registry is built locally from the
configuration; no server needs to be running.

Examples:
  capgate categories
  capgate categories --output wide
  capgate categories --output json`,
	Args: cobra.NoArgs,
	RunE: runCategories,
}

func runCategories(cmd *cobra.Command, args []string) error {
	printer, err := categoriesOpts.printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	reg, err := categoriesOpts.loadRegistry(ctx)
	if err != nil {
		return err
	}
	return printer.Categories(reg.Categories())
}

func init() {
	rootCmd.AddCommand(categoriesCmd)

	categoriesCmd.Flags().StringVarP(&categoriesOpts.outputFormat, "output", "o", "table", "Output format (table, wide, json)")
	categoriesCmd.Flags().BoolVar(&categoriesOpts.noColor, "no-color", false, "Disable colored output")
	categoriesCmd.Flags().StringVar(&categoriesOpts.configPath, "config-path", "", "Custom configuration directory path")
	categoriesCmd.Flags().BoolVar(&categoriesOpts.debug, "debug", false, "Enable debug logging")
}
