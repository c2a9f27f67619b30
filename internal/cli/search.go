package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/athena-mem/athena/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search events by content",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	cfg := loadConfig()
	s := openStore(cfg)
	defer s.Close()

	events, err := s.SearchEvents(cmd.Context(), store.SearchEventsParams{
		Project: projectFlag,
		Query:   query,
		Limit:   limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	if len(events) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(events, "", "  ")
	fmt.Println(string(b))
}
