package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Bind/skillz.sh/internal/frontmatter"
)

var agentsDisableCmd = &cobra.Command{
	Use:   "disable <agent> <skill-or-pattern>",
	Short: "Deny an agent the use of matching skills",
	Args:  cobra.ExactArgs(2),
	RunE:  runAgentsDisable,
}

func init() {
	agentsCmd.AddCommand(agentsDisableCmd)
}

func runAgentsDisable(cmd *cobra.Command, args []string) error {
	return setAgentRule(cmd, args[0], args[1], frontmatter.Deny)
}
