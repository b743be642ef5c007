package skill

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/Bind/skillz.sh/internal/registry"
	"github.com/Bind/skillz.sh/internal/skzerr"
)

// ResolverOptions describes the install target the resolver transforms
// content for.
type ResolverOptions struct {
	// Claude selects the Claude Code transforms: agent files are
	// rewritten, shared utils are skipped.
	Claude bool

	// Legacy selects the legacy utils depth for entry import rewrites.
	Legacy bool

	// UtilsDir is the absolute directory shared utils install into.
	// Empty disables utils fetching.
	UtilsDir string
}

// Resolver fetches a skill's declared files and applies the target's
// content transforms. One resolver spans one add run: shared utils are
// fetched at most once across all skills in the run.
type Resolver struct {
	opts    ResolverOptions
	logger  *slog.Logger
	fetched map[string]bool
}

// NewResolver creates a resolver for one add run.
func NewResolver(opts ResolverOptions, logger *slog.Logger) *Resolver {
	return &Resolver{
		opts:    opts,
		logger:  logger,
		fetched: make(map[string]bool),
	}
}

// Resolve fetches every file the skill declares and returns the transformed
// set ready for installation. A missing required descriptor aborts the
// skill; every other fetch failure is logged and skipped so one broken
// optional file never takes down the rest of the skill.
func (r *Resolver) Resolve(ctx context.Context, entry registry.Entry) ([]File, error) {
	s := entry.Skill
	origin := entry.Origin
	logger := r.logger.With("skill", s.Name)

	var files []File

	// Core files.
	for _, name := range s.Files.Skill {
		srcPath := path.Join("skills", s.Name, name)
		content, err := origin.FetchFile(ctx, srcPath)
		if err != nil {
			if name == registry.RequiredSkillFile {
				return nil, skzerr.RequiredFileMissing(s.Name, srcPath, origin.Source.URL(), err)
			}
			logger.Warn("skipping file", "path", srcPath, "error", err)
			continue
		}
		files = append(files, File{
			Dest:    path.Join(DestSkill, s.Name, name),
			Content: []byte(content),
		})
	}

	// Entry files install into the skill directory under their output
	// name; the source path in the manifest is registry-relative.
	entryNames := make([]string, 0, len(s.Files.Entry))
	for outName := range s.Files.Entry {
		entryNames = append(entryNames, outName)
	}
	sort.Strings(entryNames)
	for _, outName := range entryNames {
		srcPath := s.Files.Entry[outName]
		content, err := origin.FetchFile(ctx, srcPath)
		if err != nil {
			logger.Warn("skipping entry file", "path", srcPath, "error", err)
			continue
		}
		if !r.opts.Claude {
			content = RewriteUtilsImports(content, r.opts.Legacy)
		}
		files = append(files, File{
			Dest:    path.Join(DestSkill, s.Name, outName),
			Content: []byte(content),
		})
	}

	// Command files. A single-file command flattens to <command>.md.
	cmdNames := make([]string, 0, len(s.Files.Commands))
	for cmdName := range s.Files.Commands {
		cmdNames = append(cmdNames, cmdName)
	}
	sort.Strings(cmdNames)
	for _, cmdName := range cmdNames {
		cmdFiles := s.Files.Commands[cmdName]
		for _, name := range cmdFiles {
			srcPath := path.Join("skills", s.Name, "command", cmdName, name)
			content, err := origin.FetchFile(ctx, srcPath)
			if err != nil {
				logger.Warn("skipping command file", "path", srcPath, "error", err)
				continue
			}
			if !r.opts.Claude {
				content = StripFrontmatterKey(content, allowedToolsKey)
			}
			dest := path.Join(DestCommand, cmdName, name)
			if len(cmdFiles) == 1 {
				dest = path.Join(DestCommand, cmdName+".md")
			}
			files = append(files, File{Dest: dest, Content: []byte(content)})
		}
	}

	// Agent files.
	for _, name := range s.Files.Agents {
		srcPath := path.Join("skills", s.Name, "agent", name)
		content, err := origin.FetchFile(ctx, srcPath)
		if err != nil {
			logger.Warn("skipping agent file", "path", srcPath, "error", err)
			continue
		}
		if r.opts.Claude {
			content = RewriteForClaude(content)
		}
		files = append(files, File{
			Dest:    path.Join(DestAgent, name),
			Content: []byte(content),
		})
	}

	// Static files pass through verbatim.
	for _, name := range s.Files.Static {
		srcPath := path.Join("skills", s.Name, name)
		content, err := origin.FetchFile(ctx, srcPath)
		if err != nil {
			logger.Warn("skipping static file", "path", srcPath, "error", err)
			continue
		}
		files = append(files, File{
			Dest:    path.Join(DestSkill, s.Name, name),
			Content: []byte(content),
		})
	}

	// Shared utils. Claude skills are self-contained; installed utils
	// are never overwritten.
	if !r.opts.Claude {
		files = append(files, r.resolveUtils(ctx, entry, logger)...)
	}

	return files, nil
}

func (r *Resolver) resolveUtils(ctx context.Context, entry registry.Entry, logger *slog.Logger) []File {
	var files []File
	for _, util := range entry.Skill.Utils {
		if r.fetched[util] {
			continue
		}
		r.fetched[util] = true

		fileName := util + ".ts"
		if r.opts.UtilsDir != "" {
			if _, err := os.Stat(filepath.Join(r.opts.UtilsDir, fileName)); err == nil {
				logger.Debug("util already installed", "util", util)
				continue
			}
		}

		srcPath := path.Join("utils", fileName)
		content, err := entry.Origin.FetchFile(ctx, srcPath)
		if err != nil {
			logger.Warn("skipping util", "path", srcPath, "error", err)
			continue
		}
		files = append(files, File{
			Dest:    path.Join(DestUtils, fileName),
			Content: []byte(content),
		})
	}
	return files
}
