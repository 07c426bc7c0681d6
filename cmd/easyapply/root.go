package main

import (
	"fmt"

	"easyapply/internal/config"
	"easyapply/internal/infrastructure/env"
	"easyapply/internal/infrastructure/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	debugLog bool
	jsonLog  bool
	envDir   string

	rootCmd = &cobra.Command{
		Use:          config.App,
		Short:        "easyapply fills and submits LinkedIn Easy Apply forms from a fixed answer policy",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is easyapply.yaml in current directory)")
	rootCmd.PersistentFlags().BoolVarP(&debugLog, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLog, "json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringVar(&envDir, "env-dir", ".", "directory holding .env files")
}

// loadConfig reads .env files, the config file and EASYAPPLY_ overrides, and
// validates the result.
func loadConfig() (*config.Config, error) {
	envService, err := env.NewEnvService(envDir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(config.New(cfgFile), envService)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func logOptions() logger.Options {
	return logger.Options{JSON: jsonLog, Debug: debugLog}
}

func newLogger(cfg *config.Config) (*logger.LoggerAdapter, error) {
	opts := logOptions()
	opts.File = cfg.Apply.LogFile
	log, err := logger.New(opts)
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}
	return log, nil
}
