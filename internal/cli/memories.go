package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "memories",
		Short: "List memories ordered by salience",
		Run:   runMemories,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runMemories(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg := loadConfig()
	s := openStore(cfg)
	defer s.Close()

	items, err := s.ListMemories(cmd.Context(), projectFlag, limit)
	if err != nil {
		exitErr("memories", err)
	}

	if len(items) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(items, "", "  ")
	fmt.Println(string(b))
}
