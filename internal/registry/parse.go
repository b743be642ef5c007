package registry

import (
	"encoding/json"

	"github.com/Bind/skillz.sh/internal/skzerr"
)

// ParseRegistry parses a registry.json document. The registryURL is only
// used in error messages.
//
// Documents without a top-level version predate the v2 format and are
// rejected outright rather than half-parsed.
func ParseRegistry(data []byte, registryURL string) (*Registry, error) {
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, skzerr.RegistryParse(registryURL, err)
	}

	if reg.Version == "" {
		return nil, skzerr.RegistryVersion(registryURL)
	}

	return &reg, nil
}

// FindSkill returns the skill with the given name, or nil.
func (r *Registry) FindSkill(name string) *Skill {
	for i := range r.Skills {
		if r.Skills[i].Name == name {
			return &r.Skills[i]
		}
	}
	return nil
}

// FindAgent returns the agent with the given name, or nil.
func (r *Registry) FindAgent(name string) *Agent {
	for i := range r.Agents {
		if r.Agents[i].Name == name {
			return &r.Agents[i]
		}
	}
	return nil
}

// HasUtil reports whether the registry publishes a shared util module.
func (r *Registry) HasUtil(name string) bool {
	for _, u := range r.Utils {
		if u == name {
			return true
		}
	}
	return false
}
