package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bind/skillz.sh/internal/frontmatter"
)

var agentsSetCmd = &cobra.Command{
	Use:   "set <agent> <skill-or-pattern> <allow|deny|ask>",
	Short: "Set a permission rule on an installed agent",
	Args:  cobra.ExactArgs(3),
	RunE:  runAgentsSet,
}

func init() {
	agentsCmd.AddCommand(agentsSetCmd)
}

func runAgentsSet(cmd *cobra.Command, args []string) error {
	level := frontmatter.Level(args[2])
	if !level.Valid() {
		return fmt.Errorf("invalid level %q: use allow, deny, or ask", args[2])
	}
	return setAgentRule(cmd, args[0], args[1], level)
}
