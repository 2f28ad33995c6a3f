package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/fatih/color"
)

// maybeElevate re-executes the process under sudo when live wg queries would
// otherwise be refused. Already-root and already-under-sudo processes pass
// through; on re-exec the parent exits with the child's code.
func maybeElevate() error {
	if runtime.GOOS == "windows" {
		return nil
	}
	if os.Geteuid() == 0 || os.Getenv("SUDO_UID") != "" {
		return nil
	}

	fmt.Printf("%s WG-Doctor needs root privileges. Re-running with sudo...\n", color.New(color.FgCyan).Sprint("ℹ"))

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable for sudo re-exec: %w", err)
	}
	cmd := exec.Command("sudo", append([]string{exe}, os.Args[1:]...)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err = cmd.Run()
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		os.Exit(ee.ExitCode())
	}
	if err != nil {
		return fmt.Errorf("re-exec with sudo: %w", err)
	}
	os.Exit(0)
	return nil
}
