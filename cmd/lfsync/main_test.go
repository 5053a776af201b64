package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/lfsync/internal/model"
	"github.com/alfredjeanlab/lfsync/internal/ui"
)

func filterFor(t *testing.T, args ...string) (model.EventFilter, error) {
	t.Helper()
	cmd := &cobra.Command{Use: "list"}
	addEventFilterFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	return eventFilter(cmd)
}

func TestEventFilter(t *testing.T) {
	f, err := filterFor(t, "--pending", "--name", "CreateTable", "--name", "GrantPermissions", "--limit", "10")
	if err != nil {
		t.Fatalf("eventFilter: %v", err)
	}
	if len(f.Status) != 1 || f.Status[0] != model.StatusUnprocessed {
		t.Errorf("Status = %v", f.Status)
	}
	if len(f.Names) != 2 || f.Names[0] != model.EventCreateTable || f.Names[1] != model.EventGrantPermissions {
		t.Errorf("Names = %v", f.Names)
	}
	if f.Limit != 10 {
		t.Errorf("Limit = %d", f.Limit)
	}

	f, err = filterFor(t)
	if err != nil {
		t.Fatalf("eventFilter: %v", err)
	}
	if len(f.Status) != 0 || f.Limit != 50 {
		t.Errorf("default filter = %+v", f)
	}
}

func TestEventFilterErrors(t *testing.T) {
	if _, err := filterFor(t, "--pending", "--processed"); err == nil {
		t.Error("expected error for --pending with --processed")
	}
	if _, err := filterFor(t, "--name", "CreateDataCellsFilter"); err == nil {
		t.Error("expected error for unreplicated event name")
	}
}

func TestCommandGroups(t *testing.T) {
	want := map[string]string{
		"ingest":   "replication",
		"replay":   "replication",
		"events":   "replication",
		"snapshot": "snapshot",
		"serve":    "system",
		"status":   "system",
		"version":  "system",
	}
	for _, c := range rootCmd.Commands() {
		name := strings.Fields(c.Use)[0]
		group, ok := want[name]
		if !ok {
			continue
		}
		if c.GroupID != group {
			t.Errorf("%s group = %q, want %q", name, c.GroupID, group)
		}
		delete(want, name)
	}
	for name := range want {
		t.Errorf("command %s not registered", name)
	}
}

func TestColorizeHelpOutput(t *testing.T) {
	in := "Usage:\n  lfsync [command]\n\nReplication:\n  ingest      Capture changes\n\nFlags:\n" +
		"      --config string   path to a TOML config file (default $LFSYNC_CONFIG)\n" +
		"      --limit int       maximum events (default 50)\n"
	out := colorizeHelpOutput(in)

	for _, want := range []string{
		"Usage:\n",
		ui.RenderAccent("Replication:"),
		ui.RenderAccent("Flags:"),
		"  " + ui.RenderCommand("ingest") + "  ",
		"--config " + ui.RenderMuted("string"),
		"--limit " + ui.RenderMuted("int"),
		ui.RenderWarn("$LFSYNC_CONFIG"),
		ui.RenderMuted("(default 50)"),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, ui.RenderAccent("Usage:")) {
		t.Error("Usage: header was styled")
	}
}
