package service

import (
	"fmt"
	"os/exec"
	"runtime"
)

// linuxOpeners are tried in order on Linux
var linuxOpeners = []string{"xdg-open", "gnome-open", "kde-open"}

// browserCommand returns the command that opens url on the current platform
func browserCommand(url string) (string, []string, error) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{url}, nil
	case "linux":
		for _, opener := range linuxOpeners {
			if _, err := exec.LookPath(opener); err == nil {
				return opener, []string{url}, nil
			}
		}
		return "", nil, fmt.Errorf("no suitable browser opener found for Linux")
	case "windows":
		return "cmd", []string{"/c", "start", url}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// OpenBrowser opens an HTML report in the default browser without waiting for it
func OpenBrowser(url string) error {
	cmd, args, err := browserCommand(url)
	if err != nil {
		return err
	}

	if err := exec.Command(cmd, args...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
