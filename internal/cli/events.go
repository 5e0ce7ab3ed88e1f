package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"eventnite/internal/config"
	"eventnite/internal/event"
	"eventnite/internal/types"
)

func init() {
	rootCmd.AddCommand(listEventsCmd)
}

var listEventsCmd = &cobra.Command{
	Use:   "list-events",
	Short: "Print the locally tracked events",
	RunE:  listEvents,
}

func listEvents(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store := event.NewFileStore(cfg.Store.Path)
	events, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}

	if len(events) == 0 {
		fmt.Println("No events tracked.")
		return nil
	}

	fmt.Printf("%-25s  %-28s  %-5s  %-11s  %s\n", "NAME", "START", "HOURS", "SUBSCRIBERS", "REMOTE ID")
	for _, ev := range events {
		fmt.Println(formatEventLine(ev))
	}
	return nil
}

func formatEventLine(ev types.Event) string {
	return fmt.Sprintf("%-25s  %-28s  %-5d  %-11d  %d",
		ev.Name, ev.Date.Format("2006-01-02 15:04 MST"), ev.Hours, ev.SubscriberCount, ev.RemoteID)
}
