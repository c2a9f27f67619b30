// Package cli implements the athena CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/athena-mem/athena/internal/config"
	"github.com/athena-mem/athena/internal/embedding"
	"github.com/athena-mem/athena/internal/store"
)

var (
	dbPath      string
	projectFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "athena",
	Short: "Agentic memory with temporal consolidation",
	Long:  "Athena records episodic events, consolidates them into causal chains and patterns, and decays stale memories. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $ATHENA_DB or ~/.athena/athena.db)")
	RootCmd.PersistentFlags().StringVarP(&projectFlag, "project", "p", "default", "Project the memories belong to")
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg
}

func openStore(cfg *config.Config) *store.SQLiteStore {
	s, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		exitErr("open store", err)
	}
	s.SetEmbedder(embedding.NewFromEnv())
	return s
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
