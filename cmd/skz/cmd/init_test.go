package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Bind/skillz.sh/internal/project"
	"github.com/Bind/skillz.sh/internal/skzerr"
)

// setInitClaude routes the --claude flag for the duration of the test.
func setInitClaude(t *testing.T, claude bool) {
	t.Helper()
	old := initClaude
	initClaude = claude
	t.Cleanup(func() { initClaude = old })
}

func TestInitCreatesOpenCodeProject(t *testing.T) {
	dir := t.TempDir()
	setWorkDir(t, dir)
	setInitClaude(t, false)

	out, err := capture(t, initCmd, runInit)
	if err != nil {
		t.Fatalf("runInit() error = %v", err)
	}

	cfg, err := project.Load(filepath.Join(dir, ".opencode", "skz.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Registries) != 1 || cfg.Registries[0] != project.DefaultRegistry {
		t.Errorf("Registries = %v, want [%s]", cfg.Registries, project.DefaultRegistry)
	}

	for _, sub := range []string{"skill", "command", "agent", "utils"} {
		if _, err := os.Stat(filepath.Join(dir, ".opencode", sub)); err != nil {
			t.Errorf("directory %s not created: %v", sub, err)
		}
	}

	if !strings.Contains(out, "Initialized OpenCode project") {
		t.Errorf("output = %q, want init notice", out)
	}
	if !strings.Contains(out, project.DefaultRegistry) {
		t.Errorf("output = %q, want default registry", out)
	}
}

func TestInitClaude(t *testing.T) {
	dir := t.TempDir()
	setWorkDir(t, dir)
	setInitClaude(t, true)

	if _, err := capture(t, initCmd, runInit); err != nil {
		t.Fatalf("runInit() error = %v", err)
	}

	cfg, err := project.Load(filepath.Join(dir, ".claude", "skz.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Target != project.TargetClaude {
		t.Errorf("Target = %q, want %q", cfg.Target, project.TargetClaude)
	}

	for _, sub := range []string{"skills", "commands", "agents"} {
		if _, err := os.Stat(filepath.Join(dir, ".claude", sub)); err != nil {
			t.Errorf("directory %s not created: %v", sub, err)
		}
	}

	// Claude skills are self-contained, so no shared utils directory.
	if _, err := os.Stat(filepath.Join(dir, ".claude", "utils")); !os.IsNotExist(err) {
		t.Errorf("utils dir exists, want absent")
	}
}

func TestInitRefusesExistingConfig(t *testing.T) {
	dir := t.TempDir()
	setWorkDir(t, dir)
	setInitClaude(t, false)

	if _, err := capture(t, initCmd, runInit); err != nil {
		t.Fatalf("first runInit() error = %v", err)
	}

	_, err := capture(t, initCmd, runInit)
	if !skzerr.HasCode(err, skzerr.CodeConfigExists) {
		t.Errorf("error code = %q, want %q", skzerr.Code(err), skzerr.CodeConfigExists)
	}
}
