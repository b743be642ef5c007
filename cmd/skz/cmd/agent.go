package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Bind/skillz.sh/internal/agent"
	"github.com/Bind/skillz.sh/internal/project"
	"github.com/Bind/skillz.sh/internal/registry"
	"github.com/Bind/skillz.sh/internal/skill"
	"github.com/Bind/skillz.sh/internal/skzerr"
)

var agentCmd = &cobra.Command{
	Use:   "agent <names...>",
	Short: "Install agents and the skills they require",
	Long: `Install agent bundles from the configured registries. An agent's
files land in the agent directory, its required skills install through
the normal skill pipeline, and its MCP servers are merged into the
project's MCP configuration.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAgent,
}

func init() {
	rootCmd.AddCommand(agentCmd)
}

func runAgent(cmd *cobra.Command, args []string) error {
	p, err := openProject()
	if err != nil {
		return err
	}

	idx, err := p.fetchIndex(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var refs []registry.AgentRef
	seen := map[string]bool{}
	for _, query := range args {
		matches := idx.MatchAgents(query)
		if len(matches) == 0 {
			return skzerr.AgentNotFound(query, idx.AgentNames())
		}
		for _, ref := range matches {
			if seen[ref.Agent.Name] {
				continue
			}
			seen[ref.Agent.Name] = true
			refs = append(refs, ref)
		}
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	installer := p.installer()
	result := &skill.InstallResult{}

	var skillNames []string
	seenSkill := map[string]bool{}

	for _, ref := range refs {
		name := ref.Agent.Name

		files, err := agent.ResolveFiles(ctx, ref, p.layout.IsClaude(), p.logger)
		if err == nil {
			_, err = installer.Install(files)
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: agent %s: %v\n", name, err)
			result.Failed = append(result.Failed, skill.InstallFailure{Name: name, Err: err})
			continue
		}

		fmt.Fprintf(out, "Installed agent %s (%d files)\n", name, len(files))
		result.Installed = append(result.Installed, name)

		// A failed agent's skills and servers stay uninstalled.
		for _, skillName := range ref.Agent.Skills {
			if !seenSkill[skillName] {
				seenSkill[skillName] = true
				skillNames = append(skillNames, skillName)
			}
		}

		if len(ref.Agent.MCP) > 0 {
			added, err := p.mergeMCP(ref.Agent.MCP)
			if err != nil {
				return err
			}
			if len(added) > 0 {
				fmt.Fprintf(out, "Added MCP servers: %s\n", strings.Join(added, ", "))
			}
		}
	}

	var entries []registry.Entry
	for _, skillName := range skillNames {
		entry, ok := idx.Lookup(skillName)
		if !ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: no registry provides skill %q\n", skillName)
			continue
		}
		entries = append(entries, entry)
	}
	if len(entries) > 0 {
		resolved, missing := idx.ResolveDependencies(entries)
		for _, m := range missing {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s requires %q, which no registry provides\n", m.Skill, m.Requires)
		}
		skillResult, err := p.installSkills(cmd, resolved, p.resolver(), installer)
		if err != nil {
			return err
		}
		result.Failed = append(result.Failed, skillResult.Failed...)
	}

	if !result.Ok() {
		return fmt.Errorf("%d install step(s) failed", len(result.Failed))
	}
	return nil
}

// mergeMCP merges MCP server configs into the file the target reads:
// opencode.json for OpenCode, .mcp.json for Claude Code.
func (p *projectContext) mergeMCP(servers map[string]json.RawMessage) ([]string, error) {
	path := filepath.Join(p.dir, project.OpenCodeConfigFile)
	key := project.OpenCodeMCPKey
	if p.layout.IsClaude() {
		path = filepath.Join(p.dir, project.ClaudeMCPFile)
		key = project.ClaudeMCPKey
	}
	return project.MergeMCP(path, key, servers)
}
