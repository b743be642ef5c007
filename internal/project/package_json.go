package project

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/Bind/skillz.sh/internal/skzerr"
)

// PackageJSON is the Node package manifest at the project root.
const PackageJSON = "package.json"

// MergeDependencies merges a skill's external package requirements into
// the project's package.json. Pins already present are kept as-is; only
// missing packages are added. A project without a package.json is left
// alone. Returns the names of packages added.
func MergeDependencies(path string, deps map[string]string) ([]string, error) {
	if len(deps) == 0 {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, skzerr.IORead(path, err)
	}

	var manifest map[string]any
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, skzerr.ConfigParse(path, err)
	}

	existing, ok := manifest["dependencies"].(map[string]any)
	if !ok {
		existing = make(map[string]any)
	}

	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	var added []string
	for _, name := range names {
		if _, present := existing[name]; present {
			continue
		}
		existing[name] = deps[name]
		added = append(added, name)
	}

	if len(added) == 0 {
		return nil, nil
	}
	manifest["dependencies"] = existing

	out, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, skzerr.IOWrite(path, err)
	}
	out = append(out, '\n')

	if err := os.WriteFile(path, out, 0644); err != nil {
		return nil, skzerr.IOWrite(path, err)
	}
	return added, nil
}
