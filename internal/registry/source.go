package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os/exec"
	"strings"
	"time"

	"github.com/Bind/skillz.sh/internal/skzerr"
)

const (
	// githubPrefix marks registry URLs of the form github:owner/repo.
	githubPrefix = "github:"

	// rawGitHubBase is where raw GitHub content is served from.
	rawGitHubBase = "https://raw.githubusercontent.com"

	// DefaultRef is the git ref used for raw GitHub fetches when the
	// tool config does not override it.
	DefaultRef = "main"
)

// Source fetches files from one registry. The URL scheme is resolved once
// when the source is parsed; after that every variant answers the same
// Fetch call.
type Source interface {
	// Fetch retrieves one file by its slash-separated path relative to
	// the registry root.
	Fetch(ctx context.Context, path string) ([]byte, error)

	// URL returns the configured registry URL for diagnostics.
	URL() string
}

// GHRunner executes the GitHub CLI and returns its combined output.
// Swapped for a stub in tests.
type GHRunner func(ctx context.Context, args ...string) ([]byte, error)

// execGH is the production GHRunner.
func execGH(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "gh", args...)
	return cmd.CombinedOutput()
}

// SourceOptions configures source construction. The zero value means
// production defaults.
type SourceOptions struct {
	// HTTPClient is shared by all HTTPS-backed sources. Nil means a
	// client with a 30s timeout.
	HTTPClient *http.Client

	// Ref is the git ref for raw GitHub fetches. Empty means DefaultRef.
	Ref string

	// Runner executes the gh CLI. Nil means exec'ing gh.
	Runner GHRunner

	// LookPath reports whether a binary is on PATH. Nil means
	// exec.LookPath. Tests use this to force the raw-content fallback.
	LookPath func(file string) (string, error)

	// RawBase overrides the raw GitHub content host in tests.
	RawBase string
}

func (o SourceOptions) withDefaults() SourceOptions {
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if o.Ref == "" {
		o.Ref = DefaultRef
	}
	if o.Runner == nil {
		o.Runner = execGH
	}
	if o.LookPath == nil {
		o.LookPath = exec.LookPath
	}
	if o.RawBase == "" {
		o.RawBase = rawGitHubBase
	}
	return o
}

// ParseSource resolves a registry URL into its fetch scheme.
//
// github:owner/repo becomes a GitHub CLI source when gh is on PATH and a
// raw.githubusercontent.com source otherwise. https:// URLs become plain
// CDN sources (http:// is tolerated for local registries). Anything else
// is rejected.
func ParseSource(rawURL string, opts SourceOptions) (Source, error) {
	opts = opts.withDefaults()

	switch {
	case strings.HasPrefix(rawURL, githubPrefix):
		repo := strings.TrimPrefix(rawURL, githubPrefix)
		parts := strings.Split(repo, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("registry URL %q: want github:owner/repo", rawURL)
		}
		if _, err := opts.LookPath("gh"); err == nil {
			return &GitHubAPI{url: rawURL, owner: parts[0], repo: parts[1], run: opts.Runner}, nil
		}
		return &GitHubRaw{
			url:   rawURL,
			owner: parts[0],
			repo:  parts[1],
			ref:   opts.Ref,
			base:  opts.RawBase,
			httpc: opts.HTTPClient,
		}, nil

	case strings.HasPrefix(rawURL, "https://"), strings.HasPrefix(rawURL, "http://"):
		return &HTTPSCdn{url: rawURL, base: strings.TrimRight(rawURL, "/"), httpc: opts.HTTPClient}, nil

	default:
		return nil, fmt.Errorf("registry URL %q: want github:owner/repo or https://", rawURL)
	}
}

// GitHubAPI fetches through the authenticated GitHub CLI, which avoids
// the CDN staleness of raw content and works on private repos.
type GitHubAPI struct {
	url   string
	owner string
	repo  string
	run   GHRunner
}

// URL returns the configured registry URL.
func (s *GitHubAPI) URL() string { return s.url }

// Fetch retrieves a file through gh api with the raw accept header.
func (s *GitHubAPI) Fetch(ctx context.Context, path string) ([]byte, error) {
	out, err := s.run(ctx,
		"api",
		fmt.Sprintf("repos/%s/%s/contents/%s", s.owner, s.repo, path),
		"-H", "Accept: application/vnd.github.raw",
	)
	if err == nil {
		return out, nil
	}

	msg := strings.TrimSpace(string(out))
	switch {
	case strings.Contains(msg, "HTTP 404") || strings.Contains(msg, "Not Found"):
		return nil, skzerr.FileNotFound(path, s.url)
	case strings.Contains(msg, "not logged in") || strings.Contains(msg, "auth login"):
		return nil, skzerr.ToolingUnavailable(
			"GitHub CLI is not authenticated",
			"run 'gh auth login'",
		).WithDetail("path", path).WithDetail("registry", s.url).WithCause(err)
	case isExecNotFound(err):
		return nil, skzerr.ToolingUnavailable(
			"GitHub CLI (gh) is not installed",
			"install it from https://cli.github.com",
		).WithDetail("path", path).WithDetail("registry", s.url).WithCause(err)
	}
	if msg == "" {
		msg = err.Error()
	}
	return nil, skzerr.Wrap(skzerr.CodeFetchFailed, fmt.Sprintf("gh api failed for %s: %s", path, msg), err).
		WithDetail("path", path).
		WithDetail("registry", s.url)
}

func isExecNotFound(err error) bool {
	var execErr *exec.Error
	return errors.As(err, &execErr) && execErr.Err == exec.ErrNotFound
}

// GitHubRaw fetches from raw.githubusercontent.com with a cache-busting
// query parameter, because the raw CDN can serve minutes-stale content
// right after a registry push.
type GitHubRaw struct {
	url   string
	owner string
	repo  string
	ref   string
	base  string
	httpc *http.Client
}

// URL returns the configured registry URL.
func (s *GitHubRaw) URL() string { return s.url }

// Fetch retrieves a file from the raw content host.
func (s *GitHubRaw) Fetch(ctx context.Context, path string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/%s/%s/%s/%s?t=%d",
		s.base, s.owner, s.repo, url.PathEscape(s.ref), escapePath(path), time.Now().UnixNano())
	return httpGet(ctx, s.httpc, endpoint, path, s.url)
}

// HTTPSCdn fetches by concatenating the registry base URL and the
// requested path. No cache busting: these registries are expected to
// revalidate at the edge.
type HTTPSCdn struct {
	url   string
	base  string
	httpc *http.Client
}

// URL returns the configured registry URL.
func (s *HTTPSCdn) URL() string { return s.url }

// Fetch retrieves a file relative to the base URL.
func (s *HTTPSCdn) Fetch(ctx context.Context, path string) ([]byte, error) {
	return httpGet(ctx, s.httpc, s.base+"/"+escapePath(path), path, s.url)
}

// httpGet performs one GET and maps the response to the skz error
// taxonomy: 404 is a typed not-found, any other non-2xx carries the
// status code, and both name the failing path and registry.
func httpGet(ctx context.Context, httpc *http.Client, endpoint, path, registryURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, skzerr.RegistryFetch(registryURL, err).WithDetail("path", path)
	}
	req.Header.Set("User-Agent", "skz")

	resp, err := httpc.Do(req)
	if err != nil {
		return nil, skzerr.RegistryFetch(registryURL, err).WithDetail("path", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, skzerr.FileNotFound(path, registryURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, skzerr.FetchFailed(path, registryURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, skzerr.RegistryFetch(registryURL, err).WithDetail("path", path)
	}
	return body, nil
}

// escapePath escapes each segment of a slash-separated path.
func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return strings.Join(segs, "/")
}
