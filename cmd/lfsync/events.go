package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/lfsync/internal/events"
	"github.com/alfredjeanlab/lfsync/internal/model"
	"github.com/alfredjeanlab/lfsync/internal/store"
	"github.com/alfredjeanlab/lfsync/internal/ui"
)

var eventsCmd = &cobra.Command{
	Use:     "events",
	Short:   "Inspect captured events and watch replication activity",
	GroupID: "replication",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List captured events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		filter, err := eventFilter(cmd)
		if err != nil {
			return err
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		evs, err := s.List(ctx, filter)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(evs)
		}
		if len(evs) == 0 {
			fmt.Println(ui.RenderMuted("No events."))
			return nil
		}
		printEventTable(evs)
		return nil
	},
}

func addEventFilterFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("pending", false, "only events not yet replayed")
	cmd.Flags().Bool("processed", false, "only replayed events")
	cmd.Flags().StringSlice("name", nil, "filter by event name (repeatable)")
	cmd.Flags().Int("limit", 50, "maximum number of events")
}

func eventFilter(cmd *cobra.Command) (model.EventFilter, error) {
	pending, _ := cmd.Flags().GetBool("pending")
	processed, _ := cmd.Flags().GetBool("processed")
	names, _ := cmd.Flags().GetStringSlice("name")
	limit, _ := cmd.Flags().GetInt("limit")

	var f model.EventFilter
	if pending && processed {
		return f, errors.New("--pending and --processed are mutually exclusive")
	}
	if pending {
		f.Status = []model.Status{model.StatusUnprocessed}
	}
	if processed {
		f.Status = []model.Status{model.StatusProcessed}
	}
	for _, n := range names {
		name := model.EventName(n)
		if !name.IsReplicated() {
			return f, fmt.Errorf("unknown event name %q", n)
		}
		f.Names = append(f.Names, name)
	}
	f.Limit = limit
	return f, nil
}

var eventsShowCmd = &cobra.Command{
	Use:   "show <event-id>",
	Short: "Show one captured event and its request parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ev, err := s.Get(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("event %s not found", args[0])
		}
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(ev)
		}
		return printEvent(ev)
	},
}

var eventsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream replication activity from the event bus",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		if cfg.NATSURL == "" {
			return errors.New("LFSYNC_NATS_URL (nats_url) is required to watch events")
		}
		topic, _ := cmd.Flags().GetString("topic")

		sub, err := events.NewNATSSubscriber(cfg.NATSURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				logger.Warn("nats: disconnected", "err", err)
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				logger.Info("nats: reconnected")
			}),
		)
		if err != nil {
			return fmt.Errorf("connecting to NATS: %w", err)
		}
		defer sub.Close()

		ch, unsubscribe, err := sub.Subscribe(topic)
		if err != nil {
			return fmt.Errorf("subscribing to events: %w", err)
		}
		defer unsubscribe()
		defer func() {
			if n := sub.Dropped(); n > 0 {
				logger.Warn("watch fell behind, messages dropped", "count", n)
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-ch:
				if !ok {
					return nil
				}
				if jsonOutput {
					fmt.Println(string(msg.Data))
					continue
				}
				fmt.Println(formatActivity(time.Now(), msg))
			}
		}
	},
}

// formatActivity renders one bus message as a single line. The subject picks
// the payload shape; payloads that do not decode are printed raw.
func formatActivity(at time.Time, msg events.Message) string {
	prefix := ui.RenderMuted(at.Format("15:04:05"))
	switch msg.Topic {
	case events.TopicReplayProcessed, events.TopicReplayIdempotent, events.TopicReplayUnprocessed:
		var out events.ReplayOutcome
		if err := json.Unmarshal(msg.Data, &out); err != nil {
			break
		}
		line := fmt.Sprintf("%s %s %s %s", prefix, ui.RenderStatus(out.Outcome), out.EventName, ui.RenderMuted(out.EventID))
		if out.Reason != "" {
			line += " " + out.Reason
		}
		return line
	case events.TopicIngestCompleted, events.TopicReplayCompleted,
		events.TopicSnapshotExtracted, events.TopicSnapshotRestored:
		var pass events.PassCompleted
		if err := json.Unmarshal(msg.Data, &pass); err != nil {
			break
		}
		status := ui.RenderOK("completed")
		if pass.Error != "" {
			status = ui.RenderFail("failed")
		}
		return fmt.Sprintf("%s %s %s %s %v", prefix, msg.Topic, status, pass.Duration, pass.Counts)
	}
	return fmt.Sprintf("%s %s %s", prefix, msg.Topic, msg.Data)
}

func init() {
	addEventFilterFlags(eventsListCmd)

	eventsWatchCmd.Flags().String("topic", events.TopicAll, "subject to subscribe to")

	eventsCmd.AddCommand(eventsListCmd, eventsShowCmd, eventsWatchCmd)
}
