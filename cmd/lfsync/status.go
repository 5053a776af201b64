package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/alfredjeanlab/lfsync/internal/client"
	"github.com/alfredjeanlab/lfsync/internal/server"
	"github.com/alfredjeanlab/lfsync/internal/ui"
)

func defaultServer() string {
	if s := os.Getenv("LFSYNC_SERVER"); s != "" {
		return s
	}
	return "localhost:9090"
}

var statusUnits = []string{"ingest", "replay", "snapshot"}

var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show the health of a running lfsync serve process",
	GroupID: "system",
	Args:    cobra.NoArgs,
	// The status check talks to a daemon and needs no replication config.
	PersistentPreRunE: skipConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("server")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		c, err := client.NewGRPCClient(addr, os.Getenv("LFSYNC_AUTH_TOKEN"))
		if err != nil {
			return fmt.Errorf("failed to connect to server: %w", err)
		}
		defer c.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()
		ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
		defer cancelTimeout()

		overall, err := c.Check(ctx, "")
		if err != nil {
			return fmt.Errorf("checking health: %w", err)
		}

		results := make(map[string]json.RawMessage)
		var lines []string
		add := func(name, state string, raw []byte) {
			results[name] = raw
			lines = append(lines, fmt.Sprintf("  %-10s %s", name+":", renderServing(state)))
		}

		raw, err := protojson.Marshal(overall)
		if err != nil {
			return err
		}
		add("lfsync", overall.GetStatus().String(), raw)

		for _, u := range statusUnits {
			resp, err := c.Check(ctx, server.ServiceName(u))
			if status.Code(err) == codes.NotFound {
				add(u, "DISABLED", []byte(`{"status":"DISABLED"}`))
				continue
			}
			if err != nil {
				return fmt.Errorf("checking %s: %w", u, err)
			}
			raw, err := protojson.Marshal(resp)
			if err != nil {
				return err
			}
			add(u, resp.GetStatus().String(), raw)
		}

		if jsonOutput {
			return printJSON(results)
		}
		fmt.Println(ui.RenderAccent("lfsync status") + " " + ui.RenderMuted(addr))
		for _, l := range lines {
			fmt.Println(l)
		}
		return nil
	},
}

func renderServing(s string) string {
	switch s {
	case "SERVING":
		return ui.RenderOK(s)
	case "DISABLED":
		return ui.RenderMuted(s)
	}
	return ui.RenderFail(s)
}

func init() {
	statusCmd.Flags().String("server", defaultServer(), "gRPC address of the serve process")
	statusCmd.Flags().Duration("timeout", 5*time.Second, "health check timeout")
}
