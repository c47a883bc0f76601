// Package platform covers host-level concerns: privilege checks, the package
// manager abstraction, and making sure the container runtime and compose tool
// exist before any lifecycle operation runs.
package platform

import (
	"fmt"
	"os"
)

// RequireRoot fails when the process lacks root privileges. Every mutating
// operation needs them: package installs, /opt writes, docker. Missing
// privilege is fatal, so this is a plain system error and the process exits
// non-zero.
func RequireRoot() error {
	return requireEUID(os.Geteuid())
}

func requireEUID(euid int) error {
	if euid != 0 {
		return fmt.Errorf("this command must be run as root (try sudo)")
	}
	return nil
}
