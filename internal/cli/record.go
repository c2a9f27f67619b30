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
		Use:   "record [content]",
		Short: "Record an episodic event",
		Long:  "Record an episodic event. Content can be a positional arg or piped via stdin.",
		Run:   runRecord,
	}

	cmd.Flags().StringP("type", "t", "", "Event type: action, file_change, test_run, error, decision, debugging, success (required)")
	cmd.Flags().StringP("session", "s", "", "Session id (generated when omitted)")
	cmd.Flags().StringP("outcome", "o", "", "Outcome: success or failure")
	cmd.Flags().String("files", "", "Comma-separated files touched")

	cmd.MarkFlagRequired("type")

	RootCmd.AddCommand(cmd)
}

func runRecord(cmd *cobra.Command, args []string) {
	eventType, _ := cmd.Flags().GetString("type")
	session, _ := cmd.Flags().GetString("session")
	outcome, _ := cmd.Flags().GetString("outcome")
	filesStr, _ := cmd.Flags().GetString("files")

	// Get content: positional arg first, then check stdin
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

	var files []string
	if filesStr != "" {
		for _, f := range strings.Split(filesStr, ",") {
			f = strings.TrimSpace(f)
			if f != "" {
				files = append(files, f)
			}
		}
	}

	cfg := loadConfig()
	s := openStore(cfg)
	defer s.Close()

	event, err := s.RecordEvent(cmd.Context(), store.RecordParams{
		Project:   projectFlag,
		SessionID: session,
		Type:      model.EventType(eventType),
		Outcome:   model.Outcome(outcome),
		Content:   strings.TrimSpace(content),
		Files:     files,
	})
	if err != nil {
		exitErr("record", err)
	}

	b, _ := json.Marshal(event)
	fmt.Println(string(b))
}
