package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/athena-mem/athena/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import events from JSON",
		Long:  "Import events from JSON on stdin. Expects the format produced by export.",
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}

	var events []model.EpisodicEvent
	if err := json.Unmarshal(data, &events); err != nil {
		exitErr("parse json", err)
	}

	cfg := loadConfig()
	s := openStore(cfg)
	defer s.Close()

	imported, err := s.ImportEvents(cmd.Context(), projectFlag, events)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Printf(`{"ok":true,"imported":%d}`+"\n", imported)
}
