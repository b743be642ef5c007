package skill

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Bind/skillz.sh/internal/skzerr"
)

// Installer writes resolved files under a target's directory roots.
type Installer struct {
	// SkillRoot receives skill/<name>/... files.
	SkillRoot string

	// CommandRoot receives command/... files.
	CommandRoot string

	// AgentRoot receives agent/... files.
	AgentRoot string

	// UtilsRoot receives utils/... files.
	UtilsRoot string

	Logger *slog.Logger
}

// Install writes each file, creating intermediate directories as needed.
// Files are written in order with no rollback: an error reports the paths
// already written alongside the failure.
func (i *Installer) Install(files []File) ([]string, error) {
	var written []string
	for _, f := range files {
		dest, err := i.destPath(f.Dest)
		if err != nil {
			return written, err
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return written, skzerr.IOWrite(dest, err)
		}

		mode := f.Mode
		if mode == 0 {
			mode = 0644
		}
		if err := os.WriteFile(dest, f.Content, mode); err != nil {
			return written, skzerr.IOWrite(dest, err)
		}

		i.Logger.Debug("wrote file", "path", dest)
		written = append(written, dest)
	}
	return written, nil
}

// destPath routes a category-relative destination to its on-disk path.
func (i *Installer) destPath(dest string) (string, error) {
	category, rest, ok := strings.Cut(dest, "/")
	if !ok {
		return "", fmt.Errorf("destination %q has no category prefix", dest)
	}

	var root string
	switch category {
	case DestSkill:
		root = i.SkillRoot
	case DestCommand:
		root = i.CommandRoot
	case DestAgent:
		root = i.AgentRoot
	case DestUtils:
		root = i.UtilsRoot
	default:
		return "", fmt.Errorf("destination %q has unknown category %q", dest, category)
	}
	if root == "" {
		return "", fmt.Errorf("destination %q has no configured root", dest)
	}

	return filepath.Join(root, filepath.FromSlash(rest)), nil
}

// InstallFailure records one skill or agent that could not be installed.
type InstallFailure struct {
	Name string
	Err  error
}

// InstallResult is the outcome of installing a resolved list. One failing
// item never stops the rest; any failure makes the overall run fail.
type InstallResult struct {
	Installed []string
	Failed    []InstallFailure
}

// Ok reports whether every item installed.
func (r *InstallResult) Ok() bool {
	return len(r.Failed) == 0
}
