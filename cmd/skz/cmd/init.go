package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Bind/skillz.sh/internal/project"
	"github.com/Bind/skillz.sh/internal/skill"
	"github.com/Bind/skillz.sh/internal/skzerr"
)

var initClaude bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a skz project config",
	Long: `Create a skz.json with the default registry and the directory
layout for the chosen target. OpenCode is the default; pass --claude to
set up for Claude Code.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initClaude, "claude", false, "set up for Claude Code instead of OpenCode")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return err
	}

	target := project.TargetOpenCode
	if initClaude {
		target = project.TargetClaude
	}
	layout, err := skill.LayoutFor(target)
	if err != nil {
		return err
	}

	configPath := filepath.Join(dir, layout.ConfigDir, project.ConfigFile)
	if _, err := os.Stat(configPath); err == nil {
		return skzerr.ConfigExists(configPath)
	}

	cfg := project.DefaultConfig(initClaude)
	if err := project.Save(configPath, cfg); err != nil {
		return err
	}

	dirs := []string{
		layout.SkillRoot(dir),
		layout.CommandRoot(dir),
		layout.AgentRoot(dir),
	}
	if layout.SharedUtils {
		dirs = append(dirs, filepath.Join(dir, layout.ConfigDir, cfg.UtilsOrDefault()))
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return skzerr.IOWrite(d, err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized %s project in %s/\n", layout.Name, filepath.Join(dir, layout.ConfigDir))
	fmt.Fprintf(out, "Registry: %s\n", project.DefaultRegistry)
	fmt.Fprintln(out, "\nNext: skz list to browse, skz add <name> to install.")
	return nil
}
