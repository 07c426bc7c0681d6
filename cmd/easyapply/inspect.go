package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"easyapply/internal/application/service"
	"easyapply/internal/di"
	"easyapply/internal/domain/entity"
	"easyapply/internal/infrastructure/browser/static"
	"easyapply/internal/infrastructure/pacer"
	"easyapply/internal/infrastructure/userinteraction"
	"easyapply/internal/usecase/navigation"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <form.html>",
	Short: "Dry-run the answer policy against a saved form page",
	Long: "Loads a saved Easy Apply page, fills the form in memory and prints which " +
		"questions would be answered and which control would be clicked next.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func inspect(ctx context.Context, path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read form page: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	surface, err := static.FromHTML("file://"+abs, string(raw))
	if err != nil {
		return err
	}

	root, err := surface.FindOne(ctx, di.SessionConfig(cfg).ModalSelector)
	if errors.Is(err, entity.ErrElementNotFound) {
		log.Warn("Form container not found, inspecting the whole page", "path", path)
		root, err = surface.FindOne(ctx, entity.CSS("body"))
	}
	if err != nil {
		return fmt.Errorf("locate form: %w", err)
	}

	steps, err := di.NewStepProcessor(cfg, service.NewAnswerLedger(), pacer.Nop{}, log)
	if err != nil {
		return err
	}
	report, err := steps.Process(ctx, root)
	if err != nil {
		return err
	}

	ui := userinteraction.NewConsoleUserInteraction(true)
	ui.ShowFillResults(report.Results)

	decision, err := navigation.New(navigation.DefaultControls(), log).Resolve(ctx, root)
	if err != nil {
		return err
	}
	fmt.Printf("\n%d answered, %d unanswered, %d failed; next action: %s\n",
		report.Count(entity.FillAnswered),
		report.Count(entity.FillUnmatched),
		report.Count(entity.FillFailed),
		decision.Action,
	)
	for _, action := range surface.Actions() {
		log.Debug("Surface action", "action", action)
	}
	return nil
}
