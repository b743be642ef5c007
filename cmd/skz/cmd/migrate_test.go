package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Bind/skillz.sh/internal/skzerr"
)

func TestMigrateMovesLegacyProject(t *testing.T) {
	dir := t.TempDir()
	setWorkDir(t, dir)

	config := `{"registries":["https://example.com/registry"],"utils":"utils"}`
	if err := os.WriteFile(filepath.Join(dir, "skz.json"), []byte(config), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "utils"), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "utils", "logger.ts"), []byte("export const log = console.log;\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	out, err := capture(t, migrateCmd, runMigrate)
	if err != nil {
		t.Fatalf("runMigrate() error = %v", err)
	}
	for _, want := range []string{
		"Moved config to " + filepath.Join(dir, ".opencode", "skz.json"),
		"Moved utils/ into .opencode/",
		"Rewrote utils imports in 0 file(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// A second run finds nothing left to move.
	out, err = capture(t, migrateCmd, runMigrate)
	if err != nil {
		t.Fatalf("second runMigrate() error = %v", err)
	}
	if !strings.Contains(out, "Nothing to migrate") {
		t.Errorf("output = %q, want already-migrated notice", out)
	}
}

func TestMigrateWithoutProject(t *testing.T) {
	setWorkDir(t, t.TempDir())

	_, err := capture(t, migrateCmd, runMigrate)
	if !skzerr.HasCode(err, skzerr.CodeConfigNotFound) {
		t.Errorf("error code = %q, want %q", skzerr.Code(err), skzerr.CodeConfigNotFound)
	}
}
