package cmd

import (
	"context"
	"fmt"
	"io"

	"capgate/internal/app"
	"capgate/internal/cli"
	"capgate/internal/registry"
)

// offlineOptions are the flags shared by commands that build the registry
// locally instead of talking to a running server.
type offlineOptions struct {
	configPath   string
	debug        bool
	outputFormat string
	noColor      bool
}

// loadRegistry builds the same registry the server would serve.
func (o *offlineOptions) loadRegistry(ctx context.Context) (*registry.Registry, error) {
	cfg := app.NewConfig(o.debug, o.configPath)
	cfg.Quiet = true

	appCfg, err := app.LoadConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	reg, err := app.BuildRegistry(ctx, appCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}
	return reg, nil
}

func (o *offlineOptions) printer(out io.Writer) (*cli.Printer, error) {
	format, err := cli.ParseOutputFormat(o.outputFormat)
	if err != nil {
		return nil, err
	}
	return cli.NewPrinter(out, format, o.noColor), nil
}
