// Package browser opens the planner page in the desktop browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Commander starts an external process
type Commander interface {
	Start(name string, args ...string) error
}

// RealCommander executes actual commands
type RealCommander struct{}

// Start launches the command without waiting for it
func (RealCommander) Start(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Launcher opens URLs with the platform's URL handler
type Launcher struct {
	Commander Commander
	GOOS      string
}

// New returns a Launcher for the running platform
func New() *Launcher {
	return &Launcher{Commander: RealCommander{}, GOOS: runtime.GOOS}
}

// Open hands url to the platform's URL handler
func (l *Launcher) Open(url string) error {
	name, args, err := Command(l.GOOS, url)
	if err != nil {
		return err
	}
	return l.Commander.Start(name, args...)
}

// Command returns the program and arguments that open url on goos
func Command(goos, url string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// Open opens url in the default browser of the running platform
func Open(url string) error {
	return New().Open(url)
}
