package skill

import (
	"os"
	"path/filepath"
	"sort"
)

// Installed returns the names of skills present under the skills root,
// sorted. A missing root means nothing is installed.
func Installed(skillRoot string) []string {
	entries, err := os.ReadDir(skillRoot)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// IsInstalled reports whether a skill directory exists under the root.
func IsInstalled(skillRoot, name string) bool {
	info, err := os.Stat(filepath.Join(skillRoot, name))
	return err == nil && info.IsDir()
}
