package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"easyapply/internal/di"
	"easyapply/internal/infrastructure/jobs"
	"easyapply/internal/infrastructure/userinteraction"

	"github.com/spf13/cobra"
)

var (
	autoApprove bool
	jobsFile    string
	maxJobs     int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Apply to the jobs listed in the jobs file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&autoApprove, "yes", "y", false, "do not ask for confirmation before applying")
	runCmd.Flags().StringVarP(&jobsFile, "jobs", "f", "", "jobs file (overrides apply.jobs-file)")
	runCmd.Flags().IntVarP(&maxJobs, "max-jobs", "n", 0, "maximum number of jobs to process (overrides apply.max-jobs)")
}

func run(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if jobsFile != "" {
		cfg.Apply.JobsFile = jobsFile
	}
	if cmd.Flags().Changed("max-jobs") {
		cfg.Apply.MaxJobs = maxJobs
	}

	queue, err := jobs.Load(cfg.Apply.JobsFile)
	if err != nil {
		return err
	}
	if len(queue) == 0 {
		fmt.Println("No jobs to apply to in", cfg.Apply.JobsFile)
		return nil
	}

	n := len(queue)
	if cfg.Apply.MaxJobs > 0 && n > cfg.Apply.MaxJobs {
		n = cfg.Apply.MaxJobs
	}
	ui := userinteraction.NewConsoleUserInteraction(autoApprove)
	ok, err := ui.Confirm(ctx, fmt.Sprintf("Apply to %d of %d jobs from %s?", n, len(queue), cfg.Apply.JobsFile))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Nothing to do")
		return nil
	}

	container, err := di.NewContainer(ctx, di.Config{
		App:         cfg,
		Log:         logOptions(),
		AutoConfirm: autoApprove,
	})
	if err != nil {
		return err
	}
	defer container.Close()

	container.Logger.Info("Starting easyapply", "version", version, "jobs", len(queue), "limit", cfg.Apply.MaxJobs)

	report, err := container.Batch.Run(ctx, queue)
	if errors.Is(err, context.Canceled) {
		container.Logger.Warn("Run interrupted", "processed", len(report.Results))
		return nil
	}
	if err != nil {
		container.Logger.Error("Run failed", "error", err)
		return err
	}

	container.Logger.Info("Run completed",
		"run_id", report.RunID,
		"applied", report.Applied,
		"total", report.Total,
	)
	return nil
}
