package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bind/skillz.sh/internal/agent"
	"github.com/Bind/skillz.sh/internal/frontmatter"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Manage skill permissions of installed agents",
	Long: `Inspect and edit the permission rules in an installed agent's
frontmatter. Rules map a skill name or glob pattern to allow, deny, or
ask; an exact rule wins over patterns, and a skill with no rule at all is
allowed.`,
}

func init() {
	rootCmd.AddCommand(agentsCmd)
}

// setAgentRule writes one rule into an installed agent file.
func setAgentRule(cmd *cobra.Command, name, pattern string, level frontmatter.Level) error {
	p, err := openProject()
	if err != nil {
		return err
	}

	if err := agent.SetRule(p.layout.AgentRoot(p.dir), name, pattern, level); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", name, pattern, level)
	return nil
}
