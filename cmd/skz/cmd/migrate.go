package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bind/skillz.sh/internal/project"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Move a legacy root skz.json into .opencode/",
	Long: `Migrate a project from the legacy layout: the root skz.json moves to
.opencode/skz.json, the root utils directory moves into .opencode/, and
utils imports in installed skill files are rewritten to the new depth.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return err
	}

	result, err := project.Migrate(dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.AlreadyMigrated {
		fmt.Fprintln(out, "Nothing to migrate; the project already uses .opencode/skz.json")
		return nil
	}

	fmt.Fprintf(out, "Moved config to %s\n", result.ConfigPath)
	if result.UtilsMoved {
		fmt.Fprintln(out, "Moved utils/ into .opencode/")
	}
	fmt.Fprintf(out, "Rewrote utils imports in %d file(s)\n", result.FilesRewritten)
	return nil
}
