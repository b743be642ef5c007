package glob

import "testing"

func TestIsPattern(t *testing.T) {
	if !IsPattern("linear-*") {
		t.Error("IsPattern(linear-*) = false, want true")
	}
	if IsPattern("linear-issues-read") {
		t.Error("IsPattern(linear-issues-read) = true, want false")
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"linear-*", "linear-issues-read", true},
		{"linear-*", "linear-", true},
		{"linear-*", "linear", false},
		{"*-read", "linear-issues-read", true},
		{"*-read", "linear-issues-write", false},
		{"linear-*-read", "linear-issues-read", true},
		{"linear-*-read", "linear-issues-write", false},
		{"*", "anything", true},
		{"*", "", true},
		{"exact", "exact", true},
		{"exact", "exactly", false},

		// Metacharacters in the literal portion are literal.
		{"test.file", "test.file", true},
		{"test.file", "testXfile", false},
		{"a+b", "a+b", true},
		{"a+b", "aab", false},
		{"a(b)*", "a(b)c", true},
		{"a(b)*", "abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			if got := Match(tt.pattern, tt.name); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.name, got, tt.want)
			}
		})
	}
}

func TestCompile_Anchored(t *testing.T) {
	re, err := Compile("issues")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if re.MatchString("linear-issues-read") {
		t.Error("pattern without wildcard should not match substrings")
	}
	if !re.MatchString("issues") {
		t.Error("pattern should match itself")
	}
}
