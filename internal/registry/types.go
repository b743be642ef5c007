// Package registry implements the skz registry protocol: fetching
// registry.json documents and file blobs from remote registries, matching
// skill names against them, and expanding skill dependencies.
//
// A registry is a remote JSON index plus a file tree. Three URL schemes
// are supported (GitHub CLI, raw GitHub content, HTTPS CDN); the scheme is
// resolved once when a source is built and hidden behind the Source
// interface after that.
package registry

import "encoding/json"

// DefaultDomain groups skills that declare no domain of their own.
const DefaultDomain = "other"

// RequiredSkillFile is the core descriptor every skill must ship.
// A skill whose descriptor cannot be fetched is not installed.
const RequiredSkillFile = "SKILL.md"

// Registry represents a fetched registry.json document.
// It is fetched fresh on every command invocation and never cached.
type Registry struct {
	// Name is the registry identifier, used in listings and diagnostics.
	Name string `json:"name"`

	// Version is the registry document version. Required: documents
	// without it predate the v2 format and are rejected.
	Version string `json:"version"`

	// BasePath is prepended to file paths when fetching skill content.
	// Optional; used by CDN registries whose files live under a prefix.
	BasePath string `json:"basePath,omitempty"`

	// Skills lists the installable skills in this registry.
	Skills []Skill `json:"skills"`

	// Agents lists the installable agent bundles in this registry.
	Agents []Agent `json:"agents"`

	// Utils names the shared utility modules available under utils/.
	Utils []string `json:"utils"`
}

// Skill is a registry entry describing one installable skill.
type Skill struct {
	// Name is the skill identifier, unique within a registry.
	// The installed directory name always equals this name.
	Name string `json:"name"`

	// Description is a short human-readable description.
	Description string `json:"description"`

	// Version is a semver string for display only; skz does not solve
	// or compare versions.
	Version string `json:"version"`

	// Domain is a free-text grouping tag used for bulk selection.
	// Empty means DefaultDomain.
	Domain string `json:"domain,omitempty"`

	// Requires names other skills in the registry that must be
	// installed alongside this one.
	Requires []string `json:"requires,omitempty"`

	// Utils names shared utility modules this skill imports.
	Utils []string `json:"utils,omitempty"`

	// Dependencies maps external package names to version ranges,
	// merged into the project's package manifest on install.
	Dependencies map[string]string `json:"dependencies,omitempty"`

	// Setup describes post-install configuration, shown and prompted
	// for after the files are written.
	Setup *Setup `json:"setup,omitempty"`

	// Files enumerates exactly which files to fetch and where they land.
	Files FileManifest `json:"files"`
}

// DomainOrDefault returns the skill's domain, defaulting to DefaultDomain.
func (s *Skill) DomainOrDefault() string {
	if s.Domain == "" {
		return DefaultDomain
	}
	return s.Domain
}

// Setup describes a skill's post-install configuration.
type Setup struct {
	// Env names environment variables the skill needs at runtime.
	Env []string `json:"env,omitempty"`

	// Instructions is free-text setup guidance printed after install.
	Instructions string `json:"instructions,omitempty"`

	// Prompts are values collected interactively after install.
	Prompts []Prompt `json:"prompts,omitempty"`

	// ConfigFile is where collected prompt answers are written,
	// relative to the project root.
	ConfigFile string `json:"configFile,omitempty"`
}

// Prompt is one interactive setup question.
type Prompt struct {
	// Name is the key the answer is stored under.
	Name string `json:"name"`

	// Message is the question shown to the user.
	Message string `json:"message"`

	// Default is the answer used when the user enters nothing or the
	// session is non-interactive.
	Default string `json:"default,omitempty"`
}

// FileManifest enumerates a skill's files by category. Categories are
// mutually exclusive in destination: skill and static files land under
// the skill directory, commands under the commands directory, agents
// under the agents directory.
type FileManifest struct {
	// Skill lists core files fetched from skills/<name>/<file>.
	// The RequiredSkillFile entry is mandatory; the rest are
	// best-effort.
	Skill []string `json:"skill"`

	// Commands maps command names to their file lists, fetched from
	// skills/<name>/command/<command>/<file>. A single-file command
	// flattens to <command>.md at the destination.
	Commands map[string][]string `json:"commands,omitempty"`

	// Agents lists agent files fetched from skills/<name>/agent/<file>.
	Agents []string `json:"agents,omitempty"`

	// Entry maps installed file names to literal source paths in the
	// registry tree. Entry file content is rewritten so shared utility
	// imports resolve at the installed location.
	Entry map[string]string `json:"entry,omitempty"`

	// Static lists opaque files fetched verbatim from
	// skills/<name>/<path>, best-effort.
	Static []string `json:"static,omitempty"`
}

// Agent is a registry entry describing an installable agent bundle.
type Agent struct {
	// Name is the agent identifier.
	Name string `json:"name"`

	// Description is a short human-readable description.
	Description string `json:"description"`

	// Version is a semver string for display only.
	Version string `json:"version"`

	// Files lists the agent's files, fetched from agents/<name>/<file>.
	Files []string `json:"files"`

	// MCP maps server names to their configuration, merged verbatim
	// into the project's MCP config on install.
	MCP map[string]json.RawMessage `json:"mcp,omitempty"`

	// Skills names skills this agent requires; they are installed
	// through the normal skill pipeline.
	Skills []string `json:"skills,omitempty"`

	// Demo is an optional demo or documentation URL.
	Demo string `json:"demo,omitempty"`
}

// Fetched pairs a parsed registry document with the source it came from,
// so later file fetches reuse the already-resolved scheme.
type Fetched struct {
	*Registry

	// Source is the resolved fetch scheme for this registry.
	Source Source
}

// Entry is a skill together with its origin registry.
type Entry struct {
	Skill  *Skill
	Origin *Fetched
}

// AgentRef is an agent together with its origin registry.
type AgentRef struct {
	Agent  *Agent
	Origin *Fetched
}
