package cli

import "testing"

// go test runs with stdin detached, so the prompts must resolve to their
// defaults without blocking.
func TestPromptsFallBackToDefaults(t *testing.T) {
	if Interactive() {
		t.Skip("stdin is a terminal")
	}

	for _, defaultYes := range []bool{true, false} {
		got, err := Confirm("Overwrite?", defaultYes)
		if err != nil {
			t.Fatalf("Confirm() error = %v", err)
		}
		if got != defaultYes {
			t.Errorf("Confirm(default %v) = %v, want the default", defaultYes, got)
		}
	}

	got, err := Ask("Preferred style guide", "standard")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got != "standard" {
		t.Errorf("Ask() = %q, want %q", got, "standard")
	}
}
