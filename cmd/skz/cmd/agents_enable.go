package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Bind/skillz.sh/internal/frontmatter"
)

var agentsEnableCmd = &cobra.Command{
	Use:   "enable <agent> <skill-or-pattern>",
	Short: "Allow an agent to use matching skills",
	Args:  cobra.ExactArgs(2),
	RunE:  runAgentsEnable,
}

func init() {
	agentsCmd.AddCommand(agentsEnableCmd)
}

func runAgentsEnable(cmd *cobra.Command, args []string) error {
	return setAgentRule(cmd, args[0], args[1], frontmatter.Allow)
}
