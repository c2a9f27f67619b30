package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List sessions with event counts",
		Run:   runSessions,
	}

	RootCmd.AddCommand(cmd)
}

func runSessions(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	s := openStore(cfg)
	defer s.Close()

	sessions, err := s.ListSessions(cmd.Context(), projectFlag)
	if err != nil {
		exitErr("sessions", err)
	}

	if len(sessions) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(sessions, "", "  ")
	fmt.Println(string(b))
}
