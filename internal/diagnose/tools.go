package diagnose

// CheckTools verifies that the external tools the diagnosis depends on are
// present on the search path. Returns false after reporting the failure and
// an OS-specific install hint; a false return aborts the run.
func (d *Doctor) CheckTools() bool {
	d.ui.Info("Checking for required tools (`wg` and `ping`)...")

	const desc = "Verifying tool availability"

	if !d.runner.LookPath("wg") {
		d.ui.StepResult(desc, false, "`wg` command not found. Is WireGuard installed and in your PATH?")
		d.ui.Info(wgInstallHint(d.goos))
		return false
	}
	if !d.runner.LookPath("ping") {
		d.ui.StepResult(desc, false, "`ping` command not found. This is highly unusual.")
		d.ui.Info(pingMissingHint(d.goos))
		return false
	}

	d.ui.StepResult(desc, true, "Required tools are available.")
	return true
}

func wgInstallHint(goos string) string {
	switch goos {
	case "linux":
		return "Install the WireGuard tools with your package manager, e.g. `sudo apt install wireguard-tools`, `sudo dnf install wireguard-tools`, or `sudo pacman -S wireguard-tools`."
	case "darwin":
		return "Install the WireGuard tools with Homebrew: `brew install wireguard-tools`."
	case "windows":
		return "Install WireGuard from https://www.wireguard.com/install/ and make sure `wg.exe` is on your PATH."
	default:
		return "Install the WireGuard userland tools for your platform and make sure `wg` is on your PATH."
	}
}

func pingMissingHint(goos string) string {
	switch goos {
	case "linux":
		return "Your distribution ships ping in `iputils` (e.g. `sudo apt install iputils-ping`)."
	case "darwin", "windows":
		return "ping ships with the operating system; check your PATH."
	default:
		return "Install a ping utility for your platform and make sure it is on your PATH."
	}
}
