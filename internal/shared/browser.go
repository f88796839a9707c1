package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

// goos is swapped in tests.
var goos = func() string { return runtime.GOOS }

// OpenBrowser launches the system browser at url. The auth command uses it to
// hand the Spotify authorization URL to the user.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch platform := goos(); platform {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported platform: %s", platform)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
