package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athena-mem/athena/internal/model"
	"github.com/athena-mem/athena/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List recorded events",
		Run:   runEvents,
	}

	cmd.Flags().StringP("session", "s", "", "Filter by session id")
	cmd.Flags().StringP("type", "t", "", "Filter by event type")
	cmd.Flags().IntP("limit", "l", 50, "Max results")

	RootCmd.AddCommand(cmd)
}

func runEvents(cmd *cobra.Command, args []string) {
	session, _ := cmd.Flags().GetString("session")
	eventType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	cfg := loadConfig()
	s := openStore(cfg)
	defer s.Close()

	events, err := s.ListEvents(cmd.Context(), store.ListEventsParams{
		Project:   projectFlag,
		SessionID: session,
		Type:      model.EventType(eventType),
		Limit:     limit,
	})
	if err != nil {
		exitErr("events", err)
	}

	if len(events) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(events, "", "  ")
	fmt.Println(string(b))
}
