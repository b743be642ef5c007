package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Bind/skillz.sh/internal/skzerr"
)

const (
	legacyUtilsImport  = "../../../utils/"
	currentUtilsImport = "../../utils/"
)

// MigrateResult reports what a migration changed.
type MigrateResult struct {
	// AlreadyMigrated is true when no legacy config was found but a
	// current one exists. Nothing was changed.
	AlreadyMigrated bool

	// ConfigPath is the new config location.
	ConfigPath string

	// UtilsMoved is true when the root utils directory was moved.
	UtilsMoved bool

	// FilesRewritten counts installed files whose utils imports were
	// rewritten to the new depth.
	FilesRewritten int
}

// Migrate moves a legacy root skz.json into .opencode/, relocates the
// shared utils directory, and rewrites the legacy three-level utils
// imports in installed skill files to the current two-level form. Files
// without the legacy pattern are left untouched.
func Migrate(projectDir string) (*MigrateResult, error) {
	legacyPath := filepath.Join(projectDir, ConfigFile)
	cfg, err := Load(legacyPath)
	if err != nil {
		// No legacy config. A current config means nothing to do;
		// otherwise there is nothing to migrate at all.
		if _, findErr := Find(projectDir); findErr == nil {
			return &MigrateResult{AlreadyMigrated: true}, nil
		}
		return nil, skzerr.ConfigNotFound().
			WithRemediation("run 'skz init' to create a project config")
	}

	newDir := filepath.Join(projectDir, ".opencode")
	newPath := filepath.Join(newDir, ConfigFile)
	result := &MigrateResult{ConfigPath: newPath}

	if err := Save(newPath, cfg); err != nil {
		return nil, err
	}
	if err := os.Remove(legacyPath); err != nil {
		return nil, skzerr.IOWrite(legacyPath, err)
	}

	// Utils move from the project root into .opencode.
	utilsName := cfg.UtilsOrDefault()
	oldUtils := filepath.Join(projectDir, utilsName)
	newUtils := filepath.Join(newDir, utilsName)
	if info, err := os.Stat(oldUtils); err == nil && info.IsDir() {
		if err := os.Rename(oldUtils, newUtils); err != nil {
			return nil, skzerr.IOWrite(newUtils, err)
		}
		result.UtilsMoved = true
	}

	// Installed skill files keep their location; only the import depth
	// to the relocated utils changes.
	skillRoot := filepath.Join(newDir, "skill")
	rewritten, err := rewriteUtilsDepth(skillRoot)
	if err != nil {
		return nil, err
	}
	result.FilesRewritten = rewritten

	return result, nil
}

// rewriteUtilsDepth rewrites legacy utils imports in every file under
// root that contains them, returning the number of files changed.
func rewriteUtilsDepth(root string) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return skzerr.IORead(path, err)
		}
		content := string(data)
		if !strings.Contains(content, legacyUtilsImport) {
			return nil
		}

		content = strings.ReplaceAll(content, legacyUtilsImport, currentUtilsImport)
		info, err := d.Info()
		if err != nil {
			return skzerr.IORead(path, err)
		}
		if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
			return skzerr.IOWrite(path, err)
		}
		count++
		return nil
	})
	if err != nil {
		return count, err
	}
	return count, nil
}
