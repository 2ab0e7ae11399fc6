package util

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrCommandNotFound is returned by RequireCommand for a missing executable.
var ErrCommandNotFound = errors.New("command not found in PATH")

// HasCommand reports whether name resolves to an executable in PATH.
func HasCommand(name string) bool {
	if name == "" {
		return false
	}
	_, err := exec.LookPath(name)
	return err == nil
}

// RequireCommand returns nil when name is in PATH. Otherwise the error names
// the command and, when given, how to install it.
func RequireCommand(name, install string) error {
	if HasCommand(name) {
		return nil
	}
	if install == "" {
		return fmt.Errorf("%s: %w", name, ErrCommandNotFound)
	}
	return fmt.Errorf("%s: %w; install it (%s)", name, ErrCommandNotFound, install)
}
