//go:build windows
// +build windows

package cli

import (
	"os"
	"syscall"
)

func shutdownSignals() []os.Signal {
	return []os.Signal{
		os.Interrupt,
		syscall.SIGTERM,
	}
}
