package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/tilegrab/internal/cli"
)

var (
	configPath string
	verbose    bool
	hooksDir   string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tilegrab",
		Short: "Download map tiles for an area",
		Long: `tilegrab downloads the map tiles covering an area over a zoom range with:
- Areas: bounding boxes, GeoJSON polygons and WKT polygons
- Sources: {s}/{z}/{x}/{y} URL templates with subdomain pools
- Output: a zip or tar.gz archive, or a zoom_levels/{z}/{x}/{y.ext} directory tree`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&hooksDir, "hooks", "", "directory with pre-fetch.tengo / post-fetch.tengo (overrides config)")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.HooksDir = &hooksDir

	// Add subcommands
	cmd.AddCommand(
		cli.NewArchiveCmd(),
		cli.NewDirCmd(),
		cli.NewValidateCmd(),
		cli.NewTilesCmd(),
		cli.NewInspectCmd(),
		cli.NewHooksCmd(),
		cli.NewConfigCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
