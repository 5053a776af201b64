package main

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/alfredjeanlab/lfsync/internal/ui"
	"github.com/spf13/cobra"
)

// helpRule styles every match of re. When group is non-zero only that
// submatch is styled and the rest of the match is kept as is.
type helpRule struct {
	re     *regexp.Regexp
	group  int
	render func(string) string
}

// helpRules are applied in order to cobra's plain help text. "Usage:" is left
// unstyled.
var helpRules = []helpRule{
	// Group and section headers ("Replication:", "Flags:").
	{re: regexp.MustCompile(`(?m)^[A-Z][a-z]+(?: [A-Za-z]+)*:[ \t]*$`), render: renderHeader},
	// Command names in a group listing.
	{re: regexp.MustCompile(`(?m)^  ([a-z][\w-]*)  `), group: 1, render: ui.RenderCommand},
	// Flag value types.
	{re: regexp.MustCompile(`--?[\w-]+ (string|strings|int|float64|duration|stringToString)\b`), group: 1, render: ui.RenderMuted},
	// Environment variables that back a flag or setting.
	{re: regexp.MustCompile(`\$?LFSYNC_[A-Z_]+`), render: ui.RenderWarn},
	{re: regexp.MustCompile(`\(default [^)]*\)`), render: ui.RenderMuted},
}

func renderHeader(s string) string {
	if strings.HasPrefix(s, "Usage:") {
		return s
	}
	return ui.RenderAccent(s)
}

func colorizedHelpFunc() func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, _ []string) {
		if !ui.ShouldUseColor() {
			_ = cmd.Usage()
			return
		}
		out := cmd.OutOrStdout()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		_ = cmd.Usage()
		cmd.SetOut(out)
		fmt.Fprint(out, colorizeHelpOutput(buf.String()))
	}
}

// colorizeHelpOutput applies helpRules to s.
func colorizeHelpOutput(s string) string {
	for _, r := range helpRules {
		s = r.apply(s)
	}
	return s
}

func (r helpRule) apply(s string) string {
	if r.group == 0 {
		return r.re.ReplaceAllStringFunc(s, r.render)
	}
	var b bytes.Buffer
	last := 0
	for _, m := range r.re.FindAllStringSubmatchIndex(s, -1) {
		start, end := m[2*r.group], m[2*r.group+1]
		if start < 0 {
			continue
		}
		b.WriteString(s[last:start])
		b.WriteString(r.render(s[start:end]))
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}
