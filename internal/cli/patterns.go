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
		Use:   "patterns",
		Short: "List extracted causal patterns",
		Run:   runPatterns,
	}

	cmd.Flags().StringP("type", "t", "", "Filter by pattern type: tdd_cycle, error_fix, debug_session")
	cmd.Flags().IntP("limit", "l", 50, "Max results")

	RootCmd.AddCommand(cmd)
}

func runPatterns(cmd *cobra.Command, args []string) {
	patternType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	cfg := loadConfig()
	s := openStore(cfg)
	defer s.Close()

	patterns, err := s.ListPatterns(cmd.Context(), store.ListPatternsParams{
		Project: projectFlag,
		Type:    model.PatternType(patternType),
		Limit:   limit,
	})
	if err != nil {
		exitErr("patterns", err)
	}

	if len(patterns) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(patterns, "", "  ")
	fmt.Println(string(b))
}
