package registry

import (
	"sort"

	"github.com/Bind/skillz.sh/internal/glob"
)

// Index is the merged view over every fetched registry. Lookups resolve
// against all registries at once; when two registries publish the same
// skill or agent name, the one fetched first wins.
type Index struct {
	registries []*Fetched

	skills  map[string]Entry
	domains map[string][]Entry
	agents  map[string]AgentRef

	// order preserves first-seen skill order for stable listings.
	order []Entry
}

// BuildIndex merges fetched registries into a single lookup structure.
func BuildIndex(registries []*Fetched) *Index {
	idx := &Index{
		registries: registries,
		skills:     make(map[string]Entry),
		domains:    make(map[string][]Entry),
		agents:     make(map[string]AgentRef),
	}

	for _, reg := range registries {
		for i := range reg.Skills {
			skill := &reg.Skills[i]
			if _, exists := idx.skills[skill.Name]; exists {
				continue
			}
			entry := Entry{Skill: skill, Origin: reg}
			idx.skills[skill.Name] = entry
			idx.order = append(idx.order, entry)

			domain := skill.DomainOrDefault()
			idx.domains[domain] = append(idx.domains[domain], entry)
		}

		for i := range reg.Agents {
			agent := &reg.Agents[i]
			if _, exists := idx.agents[agent.Name]; exists {
				continue
			}
			idx.agents[agent.Name] = AgentRef{Agent: agent, Origin: reg}
		}
	}

	return idx
}

// Match resolves a query to skill entries. A query naming a domain selects
// every skill in that domain, even when a skill shares the same name. A
// glob pattern selects every skill whose name matches. Anything else is an
// exact skill name. The result is empty when nothing matches.
func (idx *Index) Match(query string) []Entry {
	if entries, ok := idx.domains[query]; ok {
		return entries
	}

	if glob.IsPattern(query) {
		var matched []Entry
		for _, entry := range idx.order {
			if glob.Match(query, entry.Skill.Name) {
				matched = append(matched, entry)
			}
		}
		return matched
	}

	if entry, ok := idx.skills[query]; ok {
		return []Entry{entry}
	}
	return nil
}

// MatchAgents resolves a query to agents by glob pattern or exact name.
// Agents have no domain grouping.
func (idx *Index) MatchAgents(query string) []AgentRef {
	if glob.IsPattern(query) {
		var matched []AgentRef
		for _, name := range idx.AgentNames() {
			if glob.Match(query, name) {
				matched = append(matched, idx.agents[name])
			}
		}
		return matched
	}

	if ref, ok := idx.agents[query]; ok {
		return []AgentRef{ref}
	}
	return nil
}

// Lookup returns the entry for an exact skill name.
func (idx *Index) Lookup(name string) (Entry, bool) {
	entry, ok := idx.skills[name]
	return entry, ok
}

// LookupAgent returns the ref for an exact agent name.
func (idx *Index) LookupAgent(name string) (AgentRef, bool) {
	ref, ok := idx.agents[name]
	return ref, ok
}

// Skills returns every indexed skill in first-seen order.
func (idx *Index) Skills() []Entry {
	return idx.order
}

// Domains returns every domain with at least one skill, sorted.
func (idx *Index) Domains() []string {
	domains := make([]string, 0, len(idx.domains))
	for d := range idx.domains {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	return domains
}

// ByDomain returns the skills in a domain, in first-seen order.
func (idx *Index) ByDomain(domain string) []Entry {
	return idx.domains[domain]
}

// AgentNames returns every indexed agent name, sorted.
func (idx *Index) AgentNames() []string {
	names := make([]string, 0, len(idx.agents))
	for n := range idx.agents {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
