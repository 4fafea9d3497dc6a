package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/tilegrab/internal/logger"
	"github.com/glorpus-work/tilegrab/pkg/archive"
)

func addJobFlags(cmd *cobra.Command, opts *jobOptions) {
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Seed for subdomain selection (default: random)")
	cmd.Flags().StringArrayVar(&opts.hookVars, "hook-var", nil, "Variable passed to hook scripts as KEY=VALUE (repeatable)")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics of the run to this file")
}

// NewArchiveCmd creates the archive command.
func NewArchiveCmd() *cobra.Command {
	var (
		opts   jobOptions
		output string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "archive JOB",
		Short: "Download the tiles of a job into an archive",
		Long: `Download every tile of the job, one after another, and write them into a
single zip or tar.gz archive laid out as zoom_levels/{z}/{x}/{y.ext}.
Tiles that fail to download are skipped and listed in the summary.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seeded = cmd.Flags().Changed("seed")
			return runArchive(cmd, args[0], output, &opts, strict)
		},
	}

	addJobFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Archive path (default: tiles.<format>)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Archive format: zip or tar.gz (defaults to config)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any tile is missing from the result")

	return cmd
}

func runArchive(cmd *cobra.Command, jobPath, output string, opts *jobOptions, strict bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	session, err := openSession(cfg, jobPath, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if output == "" {
		format := cfg.Format()
		if opts.format != "" {
			if format, err = archive.ParseFormat(opts.format); err != nil {
				return err
			}
		}
		output = DefaultArchiveName + format.Extension()
	}

	report, err := session.WriteArchiveToFile(cmd.Context(), output)
	writeMetrics(opts)
	if err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	logger.Success("Archive created", logger.Fields{"path": output})
	return reportResult(cmd.OutOrStdout(), report, strict)
}
