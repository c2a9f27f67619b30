package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athena-mem/athena/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "decay",
		Short: "Apply importance decay to stale memories",
		Long:  "Decay the importance of memories not accessed within the threshold, then recompute their activation and salience.",
		Run:   runDecay,
	}

	cmd.Flags().Float64("rate", 0, "Decay rate (default: $ATHENA_DECAY_RATE or 0.05)")
	cmd.Flags().Int("days", 0, "Inactivity threshold in days (default: $ATHENA_DECAY_DAYS or 30)")

	RootCmd.AddCommand(cmd)
}

func runDecay(cmd *cobra.Command, args []string) {
	rate, _ := cmd.Flags().GetFloat64("rate")
	days, _ := cmd.Flags().GetInt("days")

	cfg := loadConfig()
	if rate == 0 {
		rate = cfg.DecayRate
	}
	if days == 0 {
		days = cfg.DecayDays
	}

	s := openStore(cfg)
	defer s.Close()

	summary, err := s.ApplyDecay(cmd.Context(), store.DecayParams{
		Project:       projectFlag,
		Rate:          rate,
		DaysThreshold: days,
	})
	if err != nil {
		exitErr("decay", err)
	}

	b, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(b))
}
