package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/tilegrab/internal/logger"
)

// NewDirCmd creates the dir command.
func NewDirCmd() *cobra.Command {
	var (
		opts   jobOptions
		output string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "dir JOB",
		Short: "Download the tiles of a job into a directory tree",
		Long: `Download every tile of the job into ROOT/zoom_levels/{z}/{x}/{y.ext}.
Existing folders and files are kept, so running the command again over the same
root fills in what is missing and refreshes what downloads again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seeded = cmd.Flags().Changed("seed")
			return runDir(cmd, args[0], output, &opts, strict)
		},
	}

	addJobFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", ".", "Root directory")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any tile is missing from the result")

	return cmd
}

func runDir(cmd *cobra.Command, jobPath, root string, opts *jobOptions, strict bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	session, err := openSession(cfg, jobPath, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	dir, report, err := session.PopulateDirectory(cmd.Context(), root)
	writeMetrics(opts)
	if err != nil {
		return fmt.Errorf("failed to populate directory: %w", err)
	}

	logger.Success("Directory populated", logger.Fields{"path": dir})
	return reportResult(cmd.OutOrStdout(), report, strict)
}
