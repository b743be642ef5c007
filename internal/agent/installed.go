package agent

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Bind/skillz.sh/internal/skzerr"
)

// markdownExt is the extension installed agent files carry; the file name
// without it is the agent's identity.
const markdownExt = ".md"

// Installed returns the names of agents present under the agent root,
// sorted. A missing root means nothing is installed.
func Installed(agentRoot string) []string {
	entries, err := os.ReadDir(agentRoot)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), markdownExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), markdownExt))
	}
	sort.Strings(names)
	return names
}

// Path returns the on-disk file of an installed agent.
func Path(agentRoot, name string) (string, error) {
	p := filepath.Join(agentRoot, name+markdownExt)
	if _, err := os.Stat(p); err != nil {
		return "", skzerr.AgentNotInstalled(name, agentRoot)
	}
	return p, nil
}
