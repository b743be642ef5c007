package project

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/Bind/skillz.sh/internal/skzerr"
)

// MCP config locations per target. OpenCode nests servers under "mcp" in
// its project config; Claude Code keeps a dedicated .mcp.json with a
// "mcpServers" object.
const (
	OpenCodeConfigFile = "opencode.json"
	ClaudeMCPFile      = ".mcp.json"

	OpenCodeMCPKey = "mcp"
	ClaudeMCPKey   = "mcpServers"
)

// MergeMCP merges an agent's MCP server configs into the target's config
// file under the given key, creating the file when missing. Servers
// already configured are preserved untouched. Returns the names of
// servers added.
func MergeMCP(path, key string, servers map[string]json.RawMessage) ([]string, error) {
	if len(servers) == 0 {
		return nil, nil
	}

	doc := make(map[string]any)
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, skzerr.ConfigParse(path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, skzerr.IORead(path, err)
	}

	existing, ok := doc[key].(map[string]any)
	if !ok {
		existing = make(map[string]any)
	}

	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)

	var added []string
	for _, name := range names {
		if _, present := existing[name]; present {
			continue
		}
		var cfg any
		if err := json.Unmarshal(servers[name], &cfg); err != nil {
			return nil, skzerr.Wrap(skzerr.CodeRegistryParse, "parsing mcp config for "+name, err).
				WithDetail("server", name)
		}
		existing[name] = cfg
		added = append(added, name)
	}

	if len(added) == 0 {
		return nil, nil
	}
	doc[key] = existing

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, skzerr.IOWrite(path, err)
	}
	out = append(out, '\n')

	if err := os.WriteFile(path, out, 0644); err != nil {
		return nil, skzerr.IOWrite(path, err)
	}
	return added, nil
}
