package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete memories whose importance decayed to zero",
		Run:   runPrune,
	}

	RootCmd.AddCommand(cmd)
}

func runPrune(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	s := openStore(cfg)
	defer s.Close()

	pruned, err := s.Prune(cmd.Context(), projectFlag)
	if err != nil {
		exitErr("prune", err)
	}

	fmt.Printf(`{"ok":true,"pruned":%d}`+"\n", pruned)
}
