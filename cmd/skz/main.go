package main

import (
	"fmt"
	"os"

	"github.com/Bind/skillz.sh/cmd/skz/cmd"
	"github.com/Bind/skillz.sh/internal/skzerr"
)

// Build metadata, set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersion(version, commit, date)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := skzerr.Remediation(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
