package agent

import (
	"fmt"
	"os"

	"github.com/Bind/skillz.sh/internal/frontmatter"
	"github.com/Bind/skillz.sh/internal/skzerr"
)

// Rules reads the permission rules from an installed agent's frontmatter.
// An agent with no permission block has an empty rule set.
func Rules(agentRoot, name string) (frontmatter.Rules, error) {
	doc, path, err := load(agentRoot, name)
	if err != nil {
		return nil, err
	}
	rules, err := frontmatter.RulesFrom(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// SetRule writes one permission rule into an installed agent's
// frontmatter. Header keys keep their order, rule patterns are sorted, and
// the body below the header is untouched.
func SetRule(agentRoot, name, pattern string, level frontmatter.Level) error {
	doc, path, err := load(agentRoot, name)
	if err != nil {
		return err
	}
	rules, err := frontmatter.RulesFrom(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	rules[pattern] = level
	rules.Save(doc)

	out, err := doc.Serialize()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return skzerr.IOWrite(path, err)
	}
	return nil
}

// load reads and parses an installed agent file.
func load(agentRoot, name string) (*frontmatter.Document, string, error) {
	path, err := Path(agentRoot, name)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", skzerr.IORead(path, err)
	}
	doc, err := frontmatter.Parse(string(data))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return doc, path, nil
}
