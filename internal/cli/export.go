package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a project's events as JSON",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	s := openStore(cfg)
	defer s.Close()

	events, err := s.ExportEvents(cmd.Context(), projectFlag)
	if err != nil {
		exitErr("export", err)
	}

	b, _ := json.MarshalIndent(events, "", "  ")
	fmt.Println(string(b))
}
