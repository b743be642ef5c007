// Package testutil provides shared fixtures for command and integration
// tests: an in-memory registry server and project directory scaffolds.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// RegistryServer serves a registry file tree over HTTP. Keys are
// slash-separated paths relative to the registry root ("registry.json",
// "skills/git-helper/SKILL.md"). Unknown paths 404. The server shuts down
// when the test ends.
func RegistryServer(t *testing.T, files map[string]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content, ok := files[r.URL.Path[1:]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(content))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// NewProject creates a temporary project directory with a skz.json
// pointing at registryURL, laid out for the given target. It returns the
// project root.
func NewProject(t *testing.T, registryURL string, claude bool) string {
	t.Helper()

	dir := t.TempDir()
	configDir := ".opencode"
	if claude {
		configDir = ".claude"
	}

	if err := os.MkdirAll(filepath.Join(dir, configDir), 0755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}

	config := `{
  "registries": ["` + registryURL + `"],
  "utils": "utils"
}`
	configPath := filepath.Join(dir, configDir, "skz.json")
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return dir
}
