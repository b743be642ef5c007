package registry

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"path"

	"github.com/Bind/skillz.sh/internal/config"
	"github.com/Bind/skillz.sh/internal/skzerr"
)

// RegistryFile is the index document every registry serves at its root.
const RegistryFile = "registry.json"

// Client fetches registry documents and files. One client is built per
// command invocation; registries are always fetched fresh.
type Client struct {
	opts   SourceOptions
	logger *slog.Logger
}

// NewClient creates a client using the tool configuration's fetch
// settings (HTTP timeout, git ref).
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		opts: SourceOptions{
			HTTPClient: &http.Client{Timeout: cfg.Timeout()},
			Ref:        cfg.Fetch.GitHubRef,
		},
		logger: logger,
	}
}

// NewClientWithOptions creates a client with explicit source options.
// Tests use this to point sources at local servers and stub runners.
func NewClientWithOptions(opts SourceOptions, logger *slog.Logger) *Client {
	return &Client{opts: opts, logger: logger}
}

// ParseSource resolves a registry URL using the client's options.
func (c *Client) ParseSource(rawURL string) (Source, error) {
	return ParseSource(rawURL, c.opts)
}

// FetchRegistry fetches and parses a registry's index document. A document
// that fails structural validation is rejected like an unparseable one;
// validation warnings are logged at Debug.
func (c *Client) FetchRegistry(ctx context.Context, src Source) (*Fetched, error) {
	data, err := src.Fetch(ctx, RegistryFile)
	if err != nil {
		return nil, err
	}

	reg, err := ParseRegistry(data, src.URL())
	if err != nil {
		return nil, err
	}

	result := ValidateRegistry(reg)
	if result.HasErrors() {
		return nil, skzerr.RegistryParse(src.URL(), result)
	}
	for _, w := range result.Warnings {
		c.logger.Debug("registry validation", "registry", src.URL(), "warning", w)
	}

	return &Fetched{Registry: reg, Source: src}, nil
}

// FetchFailure records one registry that could not be fetched.
type FetchFailure struct {
	URL string
	Err error
}

// FetchResult is the outcome of fetching every configured registry.
// One unreachable or malformed registry never hides the others.
type FetchResult struct {
	Registries []*Fetched
	Failed     []FetchFailure
}

// FetchAll fetches each configured registry URL in order. Failures are
// collected, logged at Warn, and returned alongside the successes.
func (c *Client) FetchAll(ctx context.Context, urls []string) FetchResult {
	var result FetchResult
	for _, rawURL := range urls {
		src, err := c.ParseSource(rawURL)
		if err == nil {
			var fetched *Fetched
			fetched, err = c.FetchRegistry(ctx, src)
			if err == nil {
				result.Registries = append(result.Registries, fetched)
				c.logger.Debug("fetched registry",
					"registry", rawURL,
					"skills", len(fetched.Skills),
					"agents", len(fetched.Agents))
				continue
			}
		}
		c.logger.Warn("skipping registry", "registry", rawURL, "error", err)
		result.Failed = append(result.Failed, FetchFailure{URL: rawURL, Err: err})
	}
	return result
}

// FetchFile retrieves one file from this registry as text, honoring the
// registry's basePath prefix.
func (f *Fetched) FetchFile(ctx context.Context, filePath string) (string, error) {
	data, err := f.Source.Fetch(ctx, f.filePath(filePath))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FetchJSON retrieves one file from this registry and decodes it as JSON.
func (f *Fetched) FetchJSON(ctx context.Context, filePath string, v any) error {
	data, err := f.Source.Fetch(ctx, f.filePath(filePath))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return skzerr.Wrap(skzerr.CodeRegistryParse, "parsing "+filePath, err).
			WithDetail("path", filePath).
			WithDetail("registry", f.Source.URL())
	}
	return nil
}

// filePath prepends the registry's basePath, if declared.
func (f *Fetched) filePath(p string) string {
	if f.BasePath == "" {
		return p
	}
	return path.Join(f.BasePath, p)
}
