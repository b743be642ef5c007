package skill

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Layout describes where one AI harness keeps its skills, commands, and
// agents inside a project.
type Layout struct {
	// Name is the human-readable harness name (e.g., "Claude Code")
	Name string

	// ConfigDir is the harness directory at the project root
	// (e.g., ".opencode")
	ConfigDir string

	// SkillDir is the skills subdirectory name. OpenCode uses the
	// singular form, Claude Code the plural.
	SkillDir string

	// CommandDir is the commands subdirectory name.
	CommandDir string

	// AgentDir is the agents subdirectory name.
	AgentDir string

	// SharedUtils reports whether the harness shares a utilities
	// directory between skills. Claude Code does not; every Claude
	// skill must be self-contained.
	SharedUtils bool
}

// Layouts maps target names to their layout.
// These are the AI harnesses that skz knows how to install into.
var Layouts = map[string]Layout{
	"opencode": {
		Name:        "OpenCode",
		ConfigDir:   ".opencode",
		SkillDir:    "skill",
		CommandDir:  "command",
		AgentDir:    "agent",
		SharedUtils: true,
	},
	"claude": {
		Name:        "Claude Code",
		ConfigDir:   ".claude",
		SkillDir:    "skills",
		CommandDir:  "commands",
		AgentDir:    "agents",
		SharedUtils: false,
	},
}

// ListTargets returns the names of all known targets in sorted order.
func ListTargets() []string {
	targets := make([]string, 0, len(Layouts))
	for name := range Layouts {
		targets = append(targets, name)
	}
	sort.Strings(targets)
	return targets
}

// LayoutFor returns the layout for a target name.
func LayoutFor(target string) (Layout, error) {
	layout, ok := Layouts[target]
	if !ok {
		return Layout{}, fmt.Errorf("unknown target %q: use one of: %v", target, ListTargets())
	}
	return layout, nil
}

// SkillRoot returns the directory that holds installed skills.
func (l Layout) SkillRoot(projectDir string) string {
	return filepath.Join(projectDir, l.ConfigDir, l.SkillDir)
}

// CommandRoot returns the directory that holds installed commands.
func (l Layout) CommandRoot(projectDir string) string {
	return filepath.Join(projectDir, l.ConfigDir, l.CommandDir)
}

// AgentRoot returns the directory that holds installed agents.
func (l Layout) AgentRoot(projectDir string) string {
	return filepath.Join(projectDir, l.ConfigDir, l.AgentDir)
}

// SkillPath returns the directory a named skill installs into.
func (l Layout) SkillPath(projectDir, skillName string) string {
	return filepath.Join(l.SkillRoot(projectDir), skillName)
}

// IsClaude reports whether this layout targets Claude Code.
func (l Layout) IsClaude() bool {
	return l.ConfigDir == ".claude"
}
