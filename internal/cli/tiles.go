package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewTilesCmd creates the tiles command.
func NewTilesCmd() *cobra.Command {
	var (
		opts  jobOptions
		count bool
	)

	cmd := &cobra.Command{
		Use:   "tiles JOB",
		Short: "List the tiles a job would download",
		Long:  "Enumerate the tiles of a job in download order with their URLs and paths, without fetching anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seeded = cmd.Flags().Changed("seed")
			return runTiles(cmd, args[0], opts, count)
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Seed for subdomain selection (default: random)")
	cmd.Flags().BoolVar(&count, "count", false, "Only print the number of tiles")

	return cmd
}

func runTiles(cmd *cobra.Command, jobPath string, opts jobOptions, count bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Hooks only run during downloads
	cfg.Settings.HooksDir = ""

	session, err := openSession(cfg, jobPath, &opts, nil)
	if err != nil {
		return err
	}
	tasks, err := session.Tasks()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if count {
		_, _ = fmt.Fprintln(out, len(tasks))
		return nil
	}

	tabWriter := tabwriter.NewWriter(out, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "TILE\tPATH\tURL")
	for _, task := range tasks {
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%s\n", task.Tile, task.Path(), task.URL)
	}
	return tabWriter.Flush()
}
