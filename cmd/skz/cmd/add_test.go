package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Bind/skillz.sh/internal/skzerr"
)

func readInstalled(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestAddInstallsSkillWithDependencies(t *testing.T) {
	dir := testProject(t, false)
	pkgPath := filepath.Join(dir, "package.json")
	if err := os.WriteFile(pkgPath, []byte(`{"name": "app", "version": "1.0.0"}`), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	out, err := capture(t, addCmd, runAdd, "git-helper")
	if err != nil {
		t.Fatalf("runAdd() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, ".opencode", "skill", "git-base", "SKILL.md")); err != nil {
		t.Errorf("required skill git-base not installed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".opencode", "skill", "git-helper", "SKILL.md")); err != nil {
		t.Errorf("git-helper not installed: %v", err)
	}

	// Entry imports are rewritten to the installed utils depth.
	entry := readInstalled(t, filepath.Join(dir, ".opencode", "skill", "git-helper", "helper.ts"))
	if !strings.Contains(entry, `"../../utils/logger"`) {
		t.Errorf("entry import not rewritten:\n%s", entry)
	}

	command := readInstalled(t, filepath.Join(dir, ".opencode", "command", "commit.md"))
	if strings.Contains(command, "allowed-tools") {
		t.Errorf("allowed-tools not stripped:\n%s", command)
	}
	if !strings.Contains(command, "Look at the staged diff") {
		t.Errorf("command body lost:\n%s", command)
	}

	if _, err := os.Stat(filepath.Join(dir, ".opencode", "utils", "logger.ts")); err != nil {
		t.Errorf("shared util not installed: %v", err)
	}

	var manifest struct {
		Dependencies map[string]string `json:"dependencies"`
	}
	if err := json.Unmarshal([]byte(readInstalled(t, pkgPath)), &manifest); err != nil {
		t.Fatalf("Unmarshal(package.json) error = %v", err)
	}
	if manifest.Dependencies["simple-git"] != "^3.19.0" {
		t.Errorf("dependencies = %v, want simple-git pinned", manifest.Dependencies)
	}

	// Dependencies install before the skills that require them.
	base := strings.Index(out, "Installed git-base (1 files)")
	helper := strings.Index(out, "Installed git-helper (4 files)")
	if base == -1 || helper == -1 || base > helper {
		t.Errorf("install order wrong:\n%s", out)
	}
	if !strings.Contains(out, "Added to package.json: simple-git") {
		t.Errorf("output missing package.json notice:\n%s", out)
	}
}

func TestAddMatchesDomainsAndGlobs(t *testing.T) {
	for _, tt := range []struct {
		name  string
		query string
	}{
		{"domain installs every member", "vcs"},
		{"glob installs every match", "git-*"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			dir := testProject(t, false)

			if _, err := capture(t, addCmd, runAdd, tt.query); err != nil {
				t.Fatalf("runAdd(%q) error = %v", tt.query, err)
			}
			for _, name := range []string{"git-helper", "git-base"} {
				if _, err := os.Stat(filepath.Join(dir, ".opencode", "skill", name, "SKILL.md")); err != nil {
					t.Errorf("%s not installed: %v", name, err)
				}
			}
		})
	}
}

func TestAddUnknownSkill(t *testing.T) {
	testProject(t, false)

	_, err := capture(t, addCmd, runAdd, "ghost")
	if !skzerr.HasCode(err, skzerr.CodeSkillNotFound) {
		t.Errorf("error code = %q, want %q", skzerr.Code(err), skzerr.CodeSkillNotFound)
	}
}

func TestAddSkipsInstalledSkill(t *testing.T) {
	dir := testProject(t, false)

	skillDir := filepath.Join(dir, ".opencode", "skill", "linter")
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	sentinel := filepath.Join(skillDir, "SKILL.md")
	if err := os.WriteFile(sentinel, []byte("local edits\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// Stdin is not a terminal here, so the overwrite prompt resolves to
	// its default answer: keep what is on disk.
	out, err := capture(t, addCmd, runAdd, "linter")
	if err != nil {
		t.Fatalf("runAdd() error = %v", err)
	}
	if !strings.Contains(out, "Skipping linter (already installed)") {
		t.Errorf("output = %q, want skip notice", out)
	}
	if got := readInstalled(t, sentinel); got != "local edits\n" {
		t.Errorf("installed file overwritten: %q", got)
	}
}

func TestAddFailsOnMissingDescriptor(t *testing.T) {
	testProject(t, false)

	out, err := capture(t, addCmd, runAdd, "broken")
	if err == nil {
		t.Fatal("runAdd() error = nil, want failure")
	}
	if err.Error() != "1 of 1 skills failed to install" {
		t.Errorf("error = %q, want failure count", err)
	}
	if !strings.Contains(out, "Error: broken:") {
		t.Errorf("output missing per-skill error:\n%s", out)
	}
}

func TestAddClaude(t *testing.T) {
	dir := testProject(t, true)

	out, err := capture(t, addCmd, runAdd, "git-helper")
	if err != nil {
		t.Fatalf("runAdd() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, ".claude", "skills", "git-helper", "SKILL.md")); err != nil {
		t.Errorf("skill not installed under .claude/skills: %v", err)
	}

	// Claude skills are self-contained: no shared utils, imports untouched.
	entry := readInstalled(t, filepath.Join(dir, ".claude", "skills", "git-helper", "helper.ts"))
	if !strings.Contains(entry, `"../utils/logger"`) {
		t.Errorf("entry import rewritten for claude:\n%s", entry)
	}
	if _, err := os.Stat(filepath.Join(dir, ".claude", "utils")); !os.IsNotExist(err) {
		t.Errorf("shared utils dir created for claude")
	}

	command := readInstalled(t, filepath.Join(dir, ".claude", "commands", "commit.md"))
	if !strings.Contains(command, "allowed-tools: Bash(git:*)") {
		t.Errorf("allowed-tools stripped for claude:\n%s", command)
	}

	var settings struct {
		Permissions struct {
			Allow []string `json:"allow"`
			Ask   []string `json:"ask"`
		} `json:"permissions"`
	}
	data := readInstalled(t, filepath.Join(dir, ".claude", "settings.json"))
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		t.Fatalf("Unmarshal(settings.json) error = %v", err)
	}
	for _, want := range []string{"Skill(git-base)", "Skill(git-helper)"} {
		found := false
		for _, entry := range settings.Permissions.Ask {
			if entry == want {
				found = true
			}
		}
		if !found {
			t.Errorf("permissions.ask = %v, missing %q", settings.Permissions.Ask, want)
		}
	}

	if !strings.Contains(out, "permissions") {
		t.Errorf("output missing settings notice:\n%s", out)
	}
}

func TestAddPrintsSetupGuidance(t *testing.T) {
	dir := testProject(t, false)

	out, err := capture(t, addCmd, runAdd, "linter")
	if err != nil {
		t.Fatalf("runAdd() error = %v", err)
	}

	for _, want := range []string{
		"linter needs these environment variables:",
		"LINT_TOKEN",
		"Point LINT_TOKEN at a token with repo scope.",
		"Run 'skz add linter' in a terminal to configure .lintrc.json",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Prompts never run without a terminal, so no answers are written.
	if _, err := os.Stat(filepath.Join(dir, ".lintrc.json")); !os.IsNotExist(err) {
		t.Errorf(".lintrc.json written in a non-interactive run")
	}
}
