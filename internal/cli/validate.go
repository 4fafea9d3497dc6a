package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate JOB",
		Short: "Check a job file without downloading",
		Long:  "Validate the tile source and area of a job file and report whether it is ready to run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0])
		},
	}

	return cmd
}

func runValidate(cmd *cobra.Command, jobPath string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	session, err := openSession(cfg, jobPath, &jobOptions{}, nil)
	if err != nil {
		return err
	}

	src := session.Source()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s source, zoom %d-%d, format %s)\n",
		jobPath, src.Scheme, src.MinZoom, src.MaxZoom, src.Format)
	return nil
}
