package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"roadtrack/internal/ports"
)

var _ ports.LinkOpener = (*Opener)(nil)

// Opener implements ports.LinkOpener with the platform's URL handler
type Opener struct {
	goos string
}

// NewOpener creates an opener for the running operating system
func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS}
}

// OpenURL opens rawURL in the default browser
func (o *Opener) OpenURL(rawURL string) error {
	cmd, err := o.Command(rawURL)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open %s: %w", rawURL, err)
	}
	return nil
}

// Command builds the command that opens rawURL.
// Only absolute http and https URLs are accepted.
func (o *Opener) Command(rawURL string) (*exec.Cmd, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	switch o.goos {
	case "darwin":
		return exec.Command("open", u), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", u), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", u), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}

// ValidateURL checks that rawURL is an absolute web link and returns it normalized
func ValidateURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("not a web link: %s", rawURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("link has no host: %s", rawURL)
	}
	return u.String(), nil
}
