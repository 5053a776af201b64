package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ShouldUseColor reports whether stdout output gets ANSI colors.
func ShouldUseColor() bool {
	return colorEnabled(os.Getenv, term.IsTerminal(int(os.Stdout.Fd())))
}

// colorEnabled resolves the color setting from the environment. LFSYNC_COLOR
// (always, never, auto) wins, then NO_COLOR, CLICOLOR_FORCE and CLICOLOR.
// Otherwise color follows tty.
func colorEnabled(getenv func(string) string, tty bool) bool {
	switch strings.ToLower(strings.TrimSpace(getenv("LFSYNC_COLOR"))) {
	case "always":
		return true
	case "never":
		return false
	}
	if getenv("NO_COLOR") != "" {
		return false
	}
	if strings.TrimSpace(getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	if strings.TrimSpace(getenv("CLICOLOR")) == "0" {
		return false
	}
	return tty
}
