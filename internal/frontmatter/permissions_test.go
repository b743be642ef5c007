package frontmatter

import (
	"strings"
	"testing"
)

const agentWithRules = `---
description: Linear helper
permission:
  linear-issues-write: deny
  linear-*: ask
---
Helps with Linear.
`

func TestRulesFrom(t *testing.T) {
	doc, err := Parse(agentWithRules)
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	rules, err := RulesFrom(doc)
	if err != nil {
		t.Fatalf("RulesFrom() error = %v, want nil", err)
	}

	if rules["linear-issues-write"] != Deny {
		t.Errorf("rules[linear-issues-write] = %s, want deny", rules["linear-issues-write"])
	}
	if rules["linear-*"] != Ask {
		t.Errorf("rules[linear-*] = %s, want ask", rules["linear-*"])
	}
}

func TestRulesFrom_MissingKey(t *testing.T) {
	doc, err := Parse("---\ndescription: plain\n---\nbody\n")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	rules, err := RulesFrom(doc)
	if err != nil {
		t.Fatalf("RulesFrom() error = %v, want nil", err)
	}
	if rules == nil {
		t.Fatal("RulesFrom() = nil, want empty rules")
	}
	if len(rules) != 0 {
		t.Errorf("len(rules) = %d, want 0", len(rules))
	}
}

func TestRulesFrom_InvalidLevel(t *testing.T) {
	doc, err := Parse("---\npermission:\n  a: maybe\n---\n")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	if _, err := RulesFrom(doc); err == nil {
		t.Error("RulesFrom() should reject unknown levels")
	}
}

func TestDecide(t *testing.T) {
	rules := Rules{
		"linear-issues-write": Deny,
		"linear-*":            Ask,
	}

	tests := []struct {
		name string
		want Level
	}{
		{"linear-issues-write", Deny}, // exact beats wildcard
		{"linear-issues-read", Ask},   // wildcard
		{"github-pr-read", Allow},     // no rule at all
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.Decide(tt.name); got != tt.want {
				t.Errorf("Decide(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestDecide_EmptyRulesDefaultAllow(t *testing.T) {
	if got := (Rules{}).Decide("anything"); got != Allow {
		t.Errorf("Decide() = %s, want allow", got)
	}
}

func TestDecide_MultipleWildcardsDeterministic(t *testing.T) {
	rules := Rules{
		"linear-*": Deny,
		"*-read":   Ask,
	}
	// Sorted pattern order makes "*-read" win for names matching both.
	if got := rules.Decide("linear-issues-read"); got != Ask {
		t.Errorf("Decide() = %s, want ask (first pattern in sorted order)", got)
	}
}

func TestSave_SortedAndStable(t *testing.T) {
	doc, err := Parse("---\ndescription: Linear helper\n---\nbody\n")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	rules := Rules{
		"z-skill":  Allow,
		"a-skill":  Deny,
		"linear-*": Ask,
	}
	rules.Save(doc)

	out, err := doc.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v, want nil", err)
	}

	aIdx := strings.Index(out, "a-skill")
	lIdx := strings.Index(out, "linear-*")
	zIdx := strings.Index(out, "z-skill")
	if aIdx < 0 || lIdx < 0 || zIdx < 0 || !(aIdx < lIdx && lIdx < zIdx) {
		t.Errorf("patterns not sorted in output:\n%s", out)
	}
	if !strings.HasSuffix(out, "body\n") {
		t.Errorf("body altered:\n%s", out)
	}

	// Saving again yields identical output.
	rules2, err := RulesFrom(doc)
	if err != nil {
		t.Fatalf("RulesFrom() error = %v, want nil", err)
	}
	rules2.Save(doc)
	out2, err := doc.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v, want nil", err)
	}
	if out2 != out {
		t.Errorf("repeated save changed output:\ngot:  %q\nwant: %q", out2, out)
	}
}

func TestSave_EmptyRemovesKey(t *testing.T) {
	doc, err := Parse(agentWithRules)
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	Rules{}.Save(doc)

	if doc.Has("permission") {
		t.Error("permission key should be removed when rules are empty")
	}
}
