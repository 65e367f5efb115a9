package util

import "os/exec"

// HasCommand reports whether name resolves to an executable in PATH.
func HasCommand(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
