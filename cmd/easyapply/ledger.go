package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"easyapply/internal/infrastructure/history"
	"easyapply/internal/infrastructure/ledger"
	"easyapply/internal/infrastructure/userinteraction"

	"github.com/spf13/cobra"
)

var (
	ledgerLimit  int
	historyLimit int
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Show the questions seen so far and the application history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return showLedger(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(ledgerCmd)

	ledgerCmd.Flags().IntVar(&ledgerLimit, "limit", 50, "maximum number of unanswered questions to print, 0 for all")
	ledgerCmd.Flags().IntVar(&historyLimit, "recent", 10, "number of recent applications to print")
}

func showLedger(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	ui := userinteraction.NewConsoleUserInteraction(true)

	snap, err := ledger.NewFileStore(cfg.Apply.LedgerFile, log).Load(ctx)
	if err != nil {
		return err
	}
	ui.ShowLedger(snap, ledgerLimit)

	if cfg.Apply.HistoryDB == "" {
		return nil
	}
	if _, err := os.Stat(cfg.Apply.HistoryDB); errors.Is(err, fs.ErrNotExist) {
		log.Debug("No history yet", "path", cfg.Apply.HistoryDB)
		return nil
	}

	store, err := history.Open(cfg.Apply.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	counts, err := store.Counts(ctx)
	if err != nil {
		return err
	}
	recent, err := store.Recent(ctx, historyLimit)
	if err != nil {
		return err
	}
	ui.ShowHistory(counts, recent)
	return nil
}
