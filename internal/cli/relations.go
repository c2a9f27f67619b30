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
		Use:   "relations",
		Short: "List inferred temporal relations",
		Run:   runRelations,
	}

	cmd.Flags().StringP("type", "t", "", "Filter by relation type: immediately_after, shortly_after, later_after, caused")
	cmd.Flags().IntP("limit", "l", 50, "Max results")

	RootCmd.AddCommand(cmd)
}

func runRelations(cmd *cobra.Command, args []string) {
	relType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	cfg := loadConfig()
	s := openStore(cfg)
	defer s.Close()

	relations, err := s.ListRelations(cmd.Context(), store.ListRelationsParams{
		Project: projectFlag,
		Type:    model.RelationType(relType),
		Limit:   limit,
	})
	if err != nil {
		exitErr("relations", err)
	}

	if len(relations) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(relations, "", "  ")
	fmt.Println(string(b))
}
