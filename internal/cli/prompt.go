package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Interactive reports whether stdin is a terminal. Prompts are skipped
// (taking their defaults) when skz runs in a pipeline or CI.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Confirm asks a yes/no question with the given default.
// Returns true for yes, false for no. When stdin is not a terminal the
// default is returned without prompting.
func Confirm(prompt string, defaultYes bool) (bool, error) {
	if !Interactive() {
		return defaultYes, nil
	}

	suffix := "[y/N]"
	if defaultYes {
		suffix = "[Y/n]"
	}

	fmt.Printf("%s %s ", prompt, suffix)

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))

	if response == "" {
		return defaultYes, nil
	}

	return response == "y" || response == "yes", nil
}

// Ask asks a free-text question and returns the answer, or the default
// when the user enters nothing or stdin is not a terminal.
func Ask(prompt, defaultValue string) (string, error) {
	if !Interactive() {
		return defaultValue, nil
	}

	if defaultValue != "" {
		fmt.Printf("%s [%s]: ", prompt, defaultValue)
	} else {
		fmt.Printf("%s: ", prompt)
	}

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	response = strings.TrimSpace(response)
	if response == "" {
		return defaultValue, nil
	}
	return response, nil
}
