package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athena-mem/athena/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "consolidate",
		Short: "Run a consolidation pass",
		Long:  "Chain recorded events, infer temporal and causal relations, extract patterns, and promote them to memories.",
		Run:   runConsolidate,
	}

	cmd.Flags().StringP("session", "s", "", "Restrict to one session")
	cmd.Flags().Bool("cross-session", false, "Allow chains to span sessions")

	RootCmd.AddCommand(cmd)
}

func runConsolidate(cmd *cobra.Command, args []string) {
	session, _ := cmd.Flags().GetString("session")
	crossSession, _ := cmd.Flags().GetBool("cross-session")

	cfg := loadConfig()
	s := openStore(cfg)
	defer s.Close()

	result, err := s.Consolidate(cmd.Context(), store.ConsolidateParams{
		Project:         projectFlag,
		SessionID:       session,
		SameSessionOnly: !crossSession,
		MaxGap:          cfg.ChainGap,
	})
	if err != nil {
		exitErr("consolidate", err)
	}

	b, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(b))
}
