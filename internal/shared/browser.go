package shared

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// command builds the platform-specific launcher. Replaced in tests.
var command = func(name string, args ...string) *exec.Cmd { return exec.Command(name, args...) }

// OpenURL opens an http(s) link, such as a cover image, in the default system browser.
//
// Supports macOS, Linux, and Windows platforms.
func OpenURL(link string) error {
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: not a web URL: %q", ErrInvalidInput, link)
	}

	var cmd *exec.Cmd
	rt := getRuntime()
	switch rt {
	case "darwin":
		cmd = command("open", link)
	case "linux":
		cmd = command("xdg-open", link)
	case "windows":
		cmd = command("cmd", "/c", "start", link)
	default:
		return fmt.Errorf("unsupported platform: %s", rt)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
