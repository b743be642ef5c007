// Package cmd implements the skz CLI commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Bind/skillz.sh/internal/config"
	"github.com/Bind/skillz.sh/internal/logging"
	"github.com/Bind/skillz.sh/internal/project"
	"github.com/Bind/skillz.sh/internal/registry"
	"github.com/Bind/skillz.sh/internal/skill"
	"github.com/Bind/skillz.sh/internal/skzerr"
)

// chdir is the -C flag: run as if skz was started in that directory.
var chdir string

// verbose raises the log level to debug, surfacing fetch-by-fetch detail.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "skz",
	Short: "Install skills and agents from skillz registries",
	Long: `skz fetches skills and agents from remote registries and installs
them into your project, for OpenCode (.opencode/) or Claude Code
(.claude/).

Start with 'skz init', browse with 'skz list', then 'skz add <name>'.
Names can be exact, a domain (installs every skill in it), or a glob
pattern like 'git-*'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion records build metadata from main.
func SetVersion(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("skz {{.Version}} (commit %s, built %s)\n", commit, date))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&chdir, "chdir", "C", "", "run as if started in this directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.Flags().BoolP("version", "v", false, "print the version and exit")
	rootCmd.Version = "dev"
	rootCmd.SetVersionTemplate("skz {{.Version}}\n")
}

// workDir returns the effective project directory.
func workDir() (string, error) {
	if chdir != "" {
		return chdir, nil
	}
	return os.Getwd()
}

// projectContext carries everything a registry-backed command needs: the
// located project, its install layout, and a fetch client built from the
// tool configuration.
type projectContext struct {
	dir     string
	located *project.Located
	layout  skill.Layout
	cfg     *config.Config
	logger  *slog.Logger
	client  *registry.Client
}

// openProject locates the project config and builds the shared command
// plumbing around it.
func openProject() (*projectContext, error) {
	dir, err := workDir()
	if err != nil {
		return nil, err
	}

	located, err := project.Find(dir)
	if err != nil {
		return nil, err
	}

	layout, err := skill.LayoutFor(located.Target())
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	logger := logging.NewFromConfig(cfg)
	if verbose {
		logger = logging.NewWithLevel(slog.LevelDebug)
	}

	return &projectContext{
		dir:     dir,
		located: located,
		layout:  layout,
		cfg:     cfg,
		logger:  logger,
		client:  registry.NewClient(cfg, logger),
	}, nil
}

// fetchIndex fetches every configured registry and merges them. Registries
// that cannot be fetched are reported as warnings; the command fails only
// when none could be fetched at all.
func (p *projectContext) fetchIndex(ctx context.Context, errOut io.Writer) (*registry.Index, error) {
	result := p.client.FetchAll(ctx, p.located.Config.Registries)
	for _, f := range result.Failed {
		fmt.Fprintf(errOut, "Warning: skipping registry %s: %v\n", f.URL, f.Err)
	}
	if len(result.Registries) == 0 {
		return nil, skzerr.New(skzerr.CodeRegistryFetch, "no configured registry could be fetched").
			WithRemediation("check the registries list in skz.json and your network connection")
	}
	return registry.BuildIndex(result.Registries), nil
}

// installer returns an installer rooted at the project's layout.
func (p *projectContext) installer() *skill.Installer {
	return &skill.Installer{
		SkillRoot:   p.layout.SkillRoot(p.dir),
		CommandRoot: p.layout.CommandRoot(p.dir),
		AgentRoot:   p.layout.AgentRoot(p.dir),
		UtilsRoot:   p.located.UtilsPath,
		Logger:      p.logger,
	}
}

// resolver returns a file resolver for one command run.
func (p *projectContext) resolver() *skill.Resolver {
	return skill.NewResolver(skill.ResolverOptions{
		Claude:   p.layout.IsClaude(),
		Legacy:   p.located.Legacy,
		UtilsDir: p.located.UtilsPath,
	}, p.logger)
}
