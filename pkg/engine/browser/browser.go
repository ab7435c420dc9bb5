// Package browser opens external links with the platform's handler.
package browser

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// Outcome tells what happened to a link.
type Outcome int

const (
	// Opened means a browser was launched.
	Opened Outcome = iota
	// Copied means no browser could be launched and the link is on the clipboard.
	Copied
)

// Opener launches links. The zero value is not usable; use NewOpener.
type Opener struct {
	goos   string
	getenv func(string) string
	start  func(name string, args ...string) error
	copy   func(text string) error
}

// NewOpener returns an opener for the running platform.
func NewOpener() *Opener {
	return &Opener{
		goos:   runtime.GOOS,
		getenv: os.Getenv,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
		copy: clipboard.WriteAll,
	}
}

// commands returns the launch commands to try in order: $BROWSER first,
// then the platform opener.
func (o *Opener) commands(url string) [][]string {
	var cmds [][]string
	if b := strings.Fields(o.getenv("BROWSER")); len(b) > 0 {
		cmds = append(cmds, append(b, url))
	}
	switch o.goos {
	case "darwin":
		cmds = append(cmds, []string{"open", url})
	case "windows":
		cmds = append(cmds, []string{"cmd", "/c", "start", "", fmt.Sprintf("%q", url)})
	default:
		cmds = append(cmds, []string{"xdg-open", url})
	}
	return cmds
}

// Open launches url. If no launcher works the url is copied to the
// clipboard instead; an error means both failed.
func (o *Opener) Open(url string) (Outcome, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Opened, fmt.Errorf("empty URL")
	}
	var lastErr error
	for _, cmd := range o.commands(url) {
		if err := o.start(cmd[0], cmd[1:]...); err != nil {
			lastErr = err
			continue
		}
		return Opened, nil
	}
	if err := o.copy(url); err != nil {
		return Copied, fmt.Errorf("opening %s: %v; copying to clipboard: %w", url, lastErr, err)
	}
	return Copied, nil
}
