package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/alfredjeanlab/lfsync/internal/model"
	"github.com/alfredjeanlab/lfsync/internal/ui"
)

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printCounts prints a titled list of counters in a fixed order.
func printCounts(title string, keys []string, counts map[string]int) {
	fmt.Println(ui.RenderAccent(title))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s:\t%d\n", k, counts[k])
	}
	w.Flush()
}

func printEventTable(evs []*model.Event) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSOURCE\tNAME\tPROCESSED")
	for _, e := range evs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Time.Format("2006-01-02 15:04:05"),
			e.Source,
			e.Name,
			ui.RenderStatus(string(e.Status)),
		)
	}
	w.Flush()
}

func printEvent(e *model.Event) error {
	fmt.Printf("ID:           %s\n", e.ID)
	fmt.Printf("Name:         %s\n", e.Name)
	fmt.Printf("Source:       %s\n", e.Source)
	fmt.Printf("Time:         %s\n", e.Time.Format("2006-01-02 15:04:05"))
	if e.Username != "" {
		fmt.Printf("Username:     %s\n", e.Username)
	}
	fmt.Printf("Processed:    %s\n", ui.RenderStatus(string(e.Status)))
	fmt.Printf("Inserted At:  %s\n", e.InsertedAt.Format("2006-01-02 15:04:05"))
	if e.ProcessedAt != nil {
		fmt.Printf("Processed At: %s\n", e.ProcessedAt.Format("2006-01-02 15:04:05"))
	}
	params, err := e.RequestParameters()
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if params != nil {
		data, err := json.MarshalIndent(params, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(ui.RenderMuted("Request Parameters:"))
		fmt.Println(string(data))
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
