package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/tilegrab/internal/logger"
	"github.com/glorpus-work/tilegrab/pkg/errutils"
	"github.com/glorpus-work/tilegrab/pkg/fsutil"
	"github.com/glorpus-work/tilegrab/pkg/hooks"
)

// NewHooksCmd creates the hooks command with subcommands.
func NewHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage per-tile hook scripts",
		Long:  "Inspect and scaffold the pre-fetch and post-fetch tengo scripts run around each tile download",
	}

	cmd.AddCommand(
		newHooksListCmd(),
		newHooksInitCmd(),
	)

	return cmd
}

func newHooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show which hooks are active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Settings.HooksDir == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no hooks directory configured")
				return nil
			}
			manager := hooks.NewHookManager(nil)
			if err := hooks.LoadHooksFromDir(manager, cfg.Settings.HooksDir); err != nil {
				return err
			}
			for _, t := range hooks.Types {
				state := "-"
				if manager.HasHook(t) {
					state = "active"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", t, state)
			}
			return nil
		},
	}
}

func newHooksInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init TYPE",
		Short: "Write a hook script template into the hooks directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runHooksInit(hooks.HookType(args[0]), force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing script")

	return cmd
}

func runHooksInit(hookType hooks.HookType, force bool) error {
	if !hookType.Valid() {
		return hooks.ErrUnsupportedHookType(hookType)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := cfg.Settings.HooksDir
	if dir == "" {
		configDir, err := fsutil.GetConfigDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(configDir, "hooks")
	}

	path := filepath.Join(dir, string(hookType)+".tengo")
	if _, err := os.Stat(path); err == nil && !force {
		return errutils.Wrapf(errutils.ErrInvalidPath, "%s already exists (use --force to overwrite)", path)
	}
	if err := fsutil.EnsureDir(dir); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(hooks.HookTemplate(hookType)+"\n"), fsutil.FileModeDefault); err != nil {
		return fmt.Errorf("failed to write hook script: %w", err)
	}

	logger.Success("Hook script created", logger.Fields{"path": path})
	return nil
}
