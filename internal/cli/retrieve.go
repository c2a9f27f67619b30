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
		Use:   "retrieve [query]",
		Short: "Assemble salient memories for a task",
		Long:  "Rank memories by activation and salience, then greedily pack them into a token budget.",
		Run:   runRetrieve,
	}

	cmd.Flags().IntP("budget", "b", 4000, "Max tokens in output")

	RootCmd.AddCommand(cmd)
}

func runRetrieve(cmd *cobra.Command, args []string) {
	budget, _ := cmd.Flags().GetInt("budget")
	query := strings.Join(args, " ")

	cfg := loadConfig()
	s := openStore(cfg)
	defer s.Close()

	result, err := s.Retrieve(cmd.Context(), store.RetrieveParams{
		Project: projectFlag,
		Query:   query,
		Budget:  budget,
	})
	if err != nil {
		exitErr("retrieve", err)
	}

	b, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(b))
}
