package service

import (
	"os"

	"golang.org/x/term"
)

// IsInteractiveEnvironment returns true when stderr is attached to a
// terminal and the process is not running under CI.
func IsInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
