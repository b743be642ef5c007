package skill

import (
	"regexp"
	"strings"

	"github.com/Bind/skillz.sh/internal/frontmatter"
)

// Frontmatter keys stripped during install. allowed-tools is Claude's
// command tool-permission list; OpenCode manages permissions outside the
// file. mode is OpenCode's agent-routing field; Claude rejects it.
const (
	allowedToolsKey = "allowed-tools"
	agentModeKey    = "mode"
)

// Guideline filenames per harness. Agent files written for OpenCode refer
// to AGENTS.md; Claude Code reads CLAUDE.md instead.
const (
	openCodeGuideline = "AGENTS.md"
	claudeGuideline   = "CLAUDE.md"
)

// utilsImport matches a relative import prefix reaching up into the shared
// utils directory, at any depth.
var utilsImport = regexp.MustCompile(`(\.\./)+utils/`)

// RewriteUtilsImports collapses every relative utils import to the depth of
// the installed location: two levels up for the current layout, three for
// the legacy root layout.
func RewriteUtilsImports(content string, legacy bool) string {
	depth := "../../utils/"
	if legacy {
		depth = "../../../utils/"
	}
	return utilsImport.ReplaceAllString(content, depth)
}

// StripFrontmatterKey removes one key from a document's frontmatter
// header. Content without a header, or that fails to parse, is returned
// unchanged.
func StripFrontmatterKey(content, key string) string {
	doc, err := frontmatter.Parse(content)
	if err != nil || !doc.HasHeader() || !doc.Has(key) {
		return content
	}
	doc.Delete(key)
	out, err := doc.Serialize()
	if err != nil {
		return content
	}
	return out
}

// RewriteForClaude adapts an agent file for a Claude Code install: the
// OpenCode guideline filename becomes the Claude one, and the agent-routing
// frontmatter field is dropped.
func RewriteForClaude(content string) string {
	content = strings.ReplaceAll(content, openCodeGuideline, claudeGuideline)
	return StripFrontmatterKey(content, agentModeKey)
}
