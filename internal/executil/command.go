// Package executil provides utilities for working with exec.Cmd.
package executil

import (
	"errors"
	"fmt"
	"os/exec"
)

// Command returns an exec.Cmd for the given args after first calling
// exec.LookPath on the first argument.
func Command(args ...string) (*exec.Cmd, error) {
	if len(args) == 0 {
		return nil, errors.New("executil: no command")
	}
	cmdPath, err := exec.LookPath(args[0])
	if err != nil {
		return nil, fmt.Errorf("executil: exec.LookPath: %w", err)
	}
	return exec.Command(cmdPath, args[1:]...), nil
}
