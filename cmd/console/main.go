package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldstation/admin-console/internal/core/service"
	"github.com/fieldstation/admin-console/internal/infrastructure/api"
	"github.com/fieldstation/admin-console/internal/infrastructure/config"
	"github.com/fieldstation/admin-console/internal/infrastructure/state"
	"github.com/fieldstation/admin-console/internal/tui"
	"github.com/fieldstation/admin-console/pkg/logger"
)

var (
	flagServer    string
	flagStateFile string
	flagLogFile   string
)

func main() {
	root := &cobra.Command{
		Use:           "console",
		Short:         "Terminal console for the field station user directory",
		Long:          "Register, log in, and administer user records of the field station directory server from the terminal.",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Flags().StringVar(&flagServer, "server", "", "base URL of the directory server (overrides SERVER_URL)")
	root.Flags().StringVar(&flagStateFile, "state-file", "", "path of the session state file (overrides STATE_FILE)")
	root.Flags().StringVar(&flagLogFile, "log-file", "", "write logs to this file (overrides LOG_FILE)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "console:", err)
		os.Exit(1)
	}
}

func run(_ *cobra.Command, _ []string) error {
	cfg := config.Load()
	if flagServer != "" {
		cfg.ServerURL = flagServer
	}
	if flagStateFile != "" {
		cfg.StateFile = flagStateFile
	}
	if flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	var out io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Output: out})

	store := state.New(cfg.ResolveStateFile(), log)
	client := api.NewClient(cfg.ServerURL, cfg.HTTPTimeout, log)
	session := service.NewSessionService(client, store, log)
	directory := service.NewDirectoryService(client, store, session, log)

	log.Info().Str("server", cfg.ServerURL).Msg("console starting")
	return tui.Run(session, directory, log)
}
