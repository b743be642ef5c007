package registry

// MissingDependency records a requires edge that resolved to nothing.
type MissingDependency struct {
	// Skill is the name of the skill that declared the edge.
	Skill string

	// Requires is the dependency name that no registry publishes.
	Requires string
}

// ResolveDependencies expands the requested entries depth-first along their
// requires edges, returning an install list in dependency-first order. Each
// skill appears exactly once, after everything it requires. A dependency
// that no registry publishes is skipped and reported; it never aborts the
// resolve. A skill already being visited counts as resolved, so cyclic
// requires terminate without special handling.
func (idx *Index) ResolveDependencies(requested []Entry) ([]Entry, []MissingDependency) {
	seen := make(map[string]bool)
	var ordered []Entry
	var missing []MissingDependency

	var visit func(entry Entry)
	visit = func(entry Entry) {
		if seen[entry.Skill.Name] {
			return
		}
		seen[entry.Skill.Name] = true

		for _, req := range entry.Skill.Requires {
			dep, ok := idx.Lookup(req)
			if !ok {
				missing = append(missing, MissingDependency{Skill: entry.Skill.Name, Requires: req})
				continue
			}
			visit(dep)
		}

		ordered = append(ordered, entry)
	}

	for _, entry := range requested {
		visit(entry)
	}

	return ordered, missing
}
