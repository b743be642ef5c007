package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Bind/skillz.sh/internal/agent"
)

var agentsListCmd = &cobra.Command{
	Use:   "list [agent]",
	Short: "Show permission rules of installed agents",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAgentsList,
}

func init() {
	agentsCmd.AddCommand(agentsListCmd)
}

func runAgentsList(cmd *cobra.Command, args []string) error {
	p, err := openProject()
	if err != nil {
		return err
	}
	agentRoot := p.layout.AgentRoot(p.dir)

	names := args
	if len(names) == 0 {
		names = agent.Installed(agentRoot)
	}
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No agents installed")
		fmt.Fprintln(cmd.OutOrStdout(), "\nTo install: skz agent <name>")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AGENT\tPATTERN\tLEVEL")
	for _, name := range names {
		rules, err := agent.Rules(agentRoot, name)
		if err != nil {
			return err
		}
		if len(rules) == 0 {
			fmt.Fprintf(w, "%s\t(no rules)\tallow\n", name)
			continue
		}

		patterns := make([]string, 0, len(rules))
		for pattern := range rules {
			patterns = append(patterns, pattern)
		}
		sort.Strings(patterns)
		for _, pattern := range patterns {
			fmt.Fprintf(w, "%s\t%s\t%s\n", name, pattern, rules[pattern])
		}
	}
	return w.Flush()
}
