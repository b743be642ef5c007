package project

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Bind/skillz.sh/internal/skzerr"
)

// SettingsFile is Claude Code's project settings file under .claude.
const SettingsFile = "settings.json"

// readOnlySuffix marks skills that only read project state. Their Skill()
// permission can be allowed outright; everything else asks first.
const readOnlySuffix = "-read"

// UpdateClaudeSettings records installed skills in the Claude settings
// permissions block. Skills suffixed -read go to permissions.allow, the
// rest to permissions.ask, as Skill(<name>) entries. Existing entries and
// unrelated settings keys are preserved.
func UpdateClaudeSettings(path string, skillNames []string) error {
	settings := make(map[string]any)

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, &settings); err != nil {
			return skzerr.ConfigParse(path, err)
		}
	} else if !os.IsNotExist(err) {
		return skzerr.IORead(path, err)
	}

	permissions, ok := settings["permissions"].(map[string]any)
	if !ok {
		permissions = make(map[string]any)
		settings["permissions"] = permissions
	}

	allow := stringList(permissions["allow"])
	ask := stringList(permissions["ask"])

	for _, name := range skillNames {
		entry := fmt.Sprintf("Skill(%s)", name)
		if strings.HasSuffix(name, readOnlySuffix) {
			allow = appendUnique(allow, entry)
		} else {
			ask = appendUnique(ask, entry)
		}
	}

	permissions["allow"] = allow
	permissions["ask"] = ask

	out, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return skzerr.IOWrite(path, err)
	}
	out = append(out, '\n')

	if err := os.WriteFile(path, out, 0644); err != nil {
		return skzerr.IOWrite(path, err)
	}
	return nil
}

// stringList coerces a decoded JSON array into strings, dropping anything
// that is not one.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func appendUnique(list []string, entry string) []string {
	for _, existing := range list {
		if existing == entry {
			return list
		}
	}
	return append(list, entry)
}
