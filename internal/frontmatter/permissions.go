package frontmatter

import (
	"fmt"
	"sort"

	"github.com/Bind/skillz.sh/internal/glob"
	"gopkg.in/yaml.v3"
)

// Level is a permission decision for a skill.
type Level string

const (
	Allow Level = "allow"
	Deny  Level = "deny"
	Ask   Level = "ask"
)

// Valid reports whether l is one of allow, deny, ask.
func (l Level) Valid() bool {
	switch l {
	case Allow, Deny, Ask:
		return true
	}
	return false
}

// Rules maps a skill name or wildcard pattern to a permission level.
type Rules map[string]Level

// rulesKey is the frontmatter key holding an agent's permission map.
const rulesKey = "permission"

// RulesFrom extracts the permission map from a document header. A missing
// key yields an empty, non-nil Rules.
func RulesFrom(d *Document) (Rules, error) {
	rules := Rules{}
	node := d.valueNode(rulesKey)
	if node == nil {
		return rules, nil
	}

	var raw map[string]string
	if err := node.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing %s block: %w", rulesKey, err)
	}
	for pattern, level := range raw {
		l := Level(level)
		if !l.Valid() {
			return nil, fmt.Errorf("invalid permission level %q for %q", level, pattern)
		}
		rules[pattern] = l
	}
	return rules, nil
}

// Save writes the permission map into the document header with sorted
// keys so repeated edits serialize identically. An empty map removes the
// key entirely.
func (r Rules) Save(d *Document) {
	if len(r) == 0 {
		d.Delete(rulesKey)
		return
	}

	patterns := make([]string, 0, len(r))
	for pattern := range r {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	mapping := emptyMapping()
	for _, pattern := range patterns {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: pattern},
			&yaml.Node{Kind: yaml.ScalarNode, Value: string(r[pattern])},
		)
	}
	d.setNode(rulesKey, mapping)
}

// Decide returns the permission level for a skill name. An exact rule
// wins over wildcard rules; wildcard rules are consulted in sorted order;
// no rule at all means allow.
func (r Rules) Decide(name string) Level {
	if level, ok := r[name]; ok {
		return level
	}

	patterns := make([]string, 0, len(r))
	for pattern := range r {
		if glob.IsPattern(pattern) {
			patterns = append(patterns, pattern)
		}
	}
	sort.Strings(patterns)

	for _, pattern := range patterns {
		if glob.Match(pattern, name) {
			return r[pattern]
		}
	}
	return Allow
}
