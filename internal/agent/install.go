// Package agent installs agent bundles from a registry and edits the
// permission rules of agents already on disk.
package agent

import (
	"context"
	"log/slog"
	"path"

	"github.com/Bind/skillz.sh/internal/registry"
	"github.com/Bind/skillz.sh/internal/skill"
)

// ResolveFiles fetches every file an agent declares, from
// agents/<name>/<file>, ready for installation under the agent root.
// Agent files are not optional the way a skill's extras are: any fetch
// failure aborts the whole agent.
func ResolveFiles(ctx context.Context, ref registry.AgentRef, claude bool, logger *slog.Logger) ([]skill.File, error) {
	a := ref.Agent
	logger = logger.With("agent", a.Name)

	var files []skill.File
	for _, name := range a.Files {
		srcPath := path.Join("agents", a.Name, name)
		content, err := ref.Origin.FetchFile(ctx, srcPath)
		if err != nil {
			return nil, err
		}
		if claude {
			content = skill.RewriteForClaude(content)
		}
		logger.Debug("fetched agent file", "path", srcPath)
		files = append(files, skill.File{
			Dest:    path.Join(skill.DestAgent, name),
			Content: []byte(content),
		})
	}
	return files, nil
}
