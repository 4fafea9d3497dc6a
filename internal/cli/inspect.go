package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/tilegrab/pkg/archive"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	var filesOnly bool

	cmd := &cobra.Command{
		Use:   "inspect ARCHIVE",
		Short: "List the contents of a tile archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], filesOnly)
		},
	}

	cmd.Flags().BoolVar(&filesOnly, "files", false, "Only list tiles, not folders")

	return cmd
}

func runInspect(cmd *cobra.Command, archivePath string, filesOnly bool) error {
	names, err := archive.NewManager().List(cmd.Context(), archivePath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tilesCount := 0
	for _, name := range names {
		isDir := strings.HasSuffix(name, "/")
		if !isDir {
			tilesCount++
		}
		if filesOnly && isDir {
			continue
		}
		_, _ = fmt.Fprintln(out, name)
	}
	_, _ = fmt.Fprintf(out, "%d tiles\n", tilesCount)
	return nil
}
