package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Bind/skillz.sh/internal/cli"
	"github.com/Bind/skillz.sh/internal/project"
	"github.com/Bind/skillz.sh/internal/registry"
	"github.com/Bind/skillz.sh/internal/skill"
	"github.com/Bind/skillz.sh/internal/skzerr"
)

var addCmd = &cobra.Command{
	Use:   "add <names...>",
	Short: "Install skills from the configured registries",
	Long: `Install skills into the project. A name can be an exact skill name,
a domain (installs every skill in it), or a glob pattern like 'git-*'.
Skills listed under 'requires' are installed automatically.

Examples:
  skz add git-helper          # one skill
  skz add vcs                 # every skill in the vcs domain
  skz add 'lint-*' reviewer   # glob plus exact name`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	p, err := openProject()
	if err != nil {
		return err
	}

	idx, err := p.fetchIndex(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var requested []registry.Entry
	for _, query := range args {
		matches := idx.Match(query)
		if len(matches) == 0 {
			return skzerr.SkillNotFound(query, skillNames(idx))
		}
		requested = append(requested, matches...)
	}

	resolved, missing := idx.ResolveDependencies(requested)
	for _, m := range missing {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s requires %q, which no registry provides\n", m.Skill, m.Requires)
	}

	result, err := p.installSkills(cmd, resolved, p.resolver(), p.installer())
	if err != nil {
		return err
	}
	if !result.Ok() {
		return fmt.Errorf("%d of %d skills failed to install", len(result.Failed), len(resolved))
	}
	return nil
}

// skillNames lists every indexed skill name, for not-found remediation.
func skillNames(idx *registry.Index) []string {
	entries := idx.Skills()
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Skill.Name)
	}
	return names
}

// installSkills runs the fetch/transform/write pipeline for each entry in
// order. A skill already on disk asks for confirmation before being
// overwritten; declining is a skip, not a failure. One failing skill never
// stops the rest.
func (p *projectContext) installSkills(cmd *cobra.Command, entries []registry.Entry, resolver *skill.Resolver, installer *skill.Installer) (*skill.InstallResult, error) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	result := &skill.InstallResult{}

	for _, entry := range entries {
		name := entry.Skill.Name

		if skill.IsInstalled(p.layout.SkillRoot(p.dir), name) {
			overwrite, err := cli.Confirm(fmt.Sprintf("Skill %q is already installed. Overwrite?", name), false)
			if err != nil {
				return nil, err
			}
			if !overwrite {
				fmt.Fprintf(out, "Skipping %s (already installed)\n", name)
				continue
			}
		}

		files, err := resolver.Resolve(ctx, entry)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s: %v\n", name, err)
			result.Failed = append(result.Failed, skill.InstallFailure{Name: name, Err: err})
			continue
		}
		written, err := installer.Install(files)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s: %v\n", name, err)
			result.Failed = append(result.Failed, skill.InstallFailure{Name: name, Err: err})
			continue
		}

		fmt.Fprintf(out, "Installed %s (%d files)\n", name, len(written))
		result.Installed = append(result.Installed, name)

		if err := p.finishSkill(cmd, entry.Skill); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s: %v\n", name, err)
			result.Failed = append(result.Failed, skill.InstallFailure{Name: name, Err: err})
		}
	}

	if p.layout.IsClaude() && len(result.Installed) > 0 {
		settingsPath := filepath.Join(p.dir, p.layout.ConfigDir, project.SettingsFile)
		if err := project.UpdateClaudeSettings(settingsPath, result.Installed); err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "Updated %s permissions\n", settingsPath)
	}

	return result, nil
}

// finishSkill runs the post-install steps: merging the skill's external
// dependencies into package.json and walking its setup guidance.
func (p *projectContext) finishSkill(cmd *cobra.Command, s *registry.Skill) error {
	out := cmd.OutOrStdout()

	if len(s.Dependencies) > 0 {
		added, err := project.MergeDependencies(filepath.Join(p.dir, project.PackageJSON), s.Dependencies)
		if err != nil {
			return err
		}
		if len(added) > 0 {
			fmt.Fprintf(out, "Added to package.json: %s\n", strings.Join(added, ", "))
		}
	}

	return p.printSetup(cmd, s)
}

// printSetup shows a skill's setup guidance. Env vars and instructions are
// always printed; prompts run only in an interactive session, with the
// answers written to the skill's config file.
func (p *projectContext) printSetup(cmd *cobra.Command, s *registry.Skill) error {
	setup := s.Setup
	if setup == nil {
		return nil
	}
	out := cmd.OutOrStdout()

	if len(setup.Env) > 0 {
		fmt.Fprintf(out, "\n%s needs these environment variables:\n", s.Name)
		for _, env := range setup.Env {
			fmt.Fprintf(out, "  %s\n", env)
		}
	}
	if setup.Instructions != "" {
		fmt.Fprintf(out, "\n%s\n", setup.Instructions)
	}

	if len(setup.Prompts) == 0 || setup.ConfigFile == "" {
		return nil
	}
	if !cli.Interactive() {
		fmt.Fprintf(out, "Run 'skz add %s' in a terminal to configure %s\n", s.Name, setup.ConfigFile)
		return nil
	}

	answers := make(map[string]string, len(setup.Prompts))
	for _, prompt := range setup.Prompts {
		answer, err := cli.Ask(prompt.Message, prompt.Default)
		if err != nil {
			return err
		}
		answers[prompt.Name] = answer
	}

	data, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return err
	}
	configPath := filepath.Join(p.dir, setup.ConfigFile)
	if err := os.WriteFile(configPath, append(data, '\n'), 0644); err != nil {
		return skzerr.IOWrite(configPath, err)
	}
	fmt.Fprintf(out, "Wrote %s\n", setup.ConfigFile)
	return nil
}
