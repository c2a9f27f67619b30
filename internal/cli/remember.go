package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/athena-mem/athena/internal/model"
	"github.com/athena-mem/athena/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "remember [content]",
		Short: "Store a memory directly",
		Long:  "Store a memory without going through consolidation. Content can be a positional arg or piped via stdin.",
		Run:   runRemember,
	}

	cmd.Flags().Float64("importance", 0.5, "Initial importance in [0,1]")
	cmd.Flags().Float64("actionability", 0, "Actionability score in [0,1]")
	cmd.Flags().Bool("next-step", false, "Memory carries a concrete next step")
	cmd.Flags().StringP("outcome", "o", "", "Outcome: success or failure")

	RootCmd.AddCommand(cmd)
}

func runRemember(cmd *cobra.Command, args []string) {
	importance, _ := cmd.Flags().GetFloat64("importance")
	actionability, _ := cmd.Flags().GetFloat64("actionability")
	nextStep, _ := cmd.Flags().GetBool("next-step")
	outcome, _ := cmd.Flags().GetString("outcome")

	var content string
	if len(args) > 0 {
		content = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			content = string(b)
		}
	}
	if strings.TrimSpace(content) == "" {
		exitErr("remember", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	cfg := loadConfig()
	s := openStore(cfg)
	defer s.Close()

	item, err := s.AddMemory(cmd.Context(), store.AddMemoryParams{
		Project:            projectFlag,
		Content:            strings.TrimSpace(content),
		Importance:         importance,
		ActionabilityScore: actionability,
		HasNextStep:        nextStep,
		Outcome:            model.Outcome(outcome),
	})
	if err != nil {
		exitErr("remember", err)
	}

	b, _ := json.Marshal(item)
	fmt.Println(string(b))
}
