package cli

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/adhocore/gronx"
	"github.com/spf13/cobra"

	"github.com/athena-mem/athena/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run consolidation and decay on a schedule",
		Long:  "Run consolidation and decay passes on the configured cron schedule until interrupted.",
		Run:   runRun,
	}

	cmd.Flags().String("schedule", "", "Cron schedule (default: $ATHENA_SCHEDULE or hourly)")

	RootCmd.AddCommand(cmd)
}

func runRun(cmd *cobra.Command, args []string) {
	schedule, _ := cmd.Flags().GetString("schedule")

	cfg := loadConfig()
	if schedule == "" {
		schedule = cfg.Schedule
	}
	if !gronx.New().IsValid(schedule) {
		exitErr("run", fmt.Errorf("invalid cron schedule %q", schedule))
	}

	s := openStore(cfg)
	defer s.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("running on schedule %q (project %s)\n", schedule, projectFlag)
	for {
		next, err := gronx.NextTickAfter(schedule, time.Now(), false)
		if err != nil {
			exitErr("run", err)
		}

		select {
		case <-ctx.Done():
			fmt.Println("stopped")
			return
		case <-time.After(time.Until(next)):
		}

		result, err := s.Consolidate(ctx, store.ConsolidateParams{
			Project:         projectFlag,
			SameSessionOnly: true,
			MaxGap:          cfg.ChainGap,
		})
		if err != nil {
			exitErr("consolidate", err)
		}

		summary, err := s.ApplyDecay(ctx, store.DecayParams{
			Project:       projectFlag,
			Rate:          cfg.DecayRate,
			DaysThreshold: cfg.DecayDays,
		})
		if err != nil {
			exitErr("decay", err)
		}

		tick := struct {
			At            time.Time                  `json:"at"`
			Consolidation *store.ConsolidationResult `json:"consolidation"`
			Decay         interface{}                `json:"decay"`
		}{time.Now().UTC(), result, summary}
		b, _ := json.Marshal(tick)
		fmt.Println(string(b))
	}
}
