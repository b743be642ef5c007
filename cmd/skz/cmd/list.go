package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Bind/skillz.sh/internal/agent"
	"github.com/Bind/skillz.sh/internal/skill"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills and agents in the configured registries",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	p, err := openProject()
	if err != nil {
		return err
	}

	idx, err := p.fetchIndex(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	installed := map[string]bool{}
	for _, name := range skill.Installed(p.layout.SkillRoot(p.dir)) {
		installed[name] = true
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SKILL\tVERSION\tDESCRIPTION")
	for _, domain := range idx.Domains() {
		fmt.Fprintf(w, "[%s]\t\t\n", domain)
		for _, entry := range idx.ByDomain(domain) {
			fmt.Fprintf(w, "  %s%s\t%s\t%s\n",
				entry.Skill.Name, installedMarker(installed[entry.Skill.Name]),
				entry.Skill.Version, entry.Skill.Description)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	agentNames := idx.AgentNames()
	if len(agentNames) == 0 {
		return nil
	}

	installedAgents := map[string]bool{}
	for _, name := range agent.Installed(p.layout.AgentRoot(p.dir)) {
		installedAgents[name] = true
	}

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AGENT\tVERSION\tDESCRIPTION")
	for _, name := range agentNames {
		ref, ok := idx.LookupAgent(name)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\n",
			name, installedMarker(installedAgents[name]),
			ref.Agent.Version, ref.Agent.Description)
	}
	return w.Flush()
}

// installedMarker suffixes names already present in the project.
func installedMarker(installed bool) string {
	if installed {
		return " *"
	}
	return ""
}
