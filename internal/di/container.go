package di

import (
	"context"
	"fmt"

	"easyapply/internal/application/port/input"
	"easyapply/internal/application/port/output"
	"easyapply/internal/application/service"
	"easyapply/internal/config"
	"easyapply/internal/infrastructure/artifacts"
	"easyapply/internal/infrastructure/browser/rod"
	"easyapply/internal/infrastructure/history"
	"easyapply/internal/infrastructure/ledger"
	"easyapply/internal/infrastructure/logger"
	"easyapply/internal/infrastructure/pacer"
	"easyapply/internal/infrastructure/userinteraction"
	"easyapply/internal/usecase/batch"
	"easyapply/internal/usecase/navigation"
	"easyapply/internal/usecase/resolver"
	"easyapply/internal/usecase/session"
	"easyapply/internal/usecase/step"
)

// formRootClass narrows captured artifacts to the application form.
const formRootClass = "jobs-easy-apply-modal"

type Container struct {
	Config      *config.Config
	Logger      output.LoggerPort
	Surface     output.SurfacePort
	Ledger      *service.AnswerLedger
	LedgerStore *ledger.FileStore
	History     output.HistoryPort
	UI          *userinteraction.ConsoleUserInteraction
	Session     input.SessionRunner
	Batch       input.BatchRunner
}

type Config struct {
	App         *config.Config
	Log         logger.Options
	AutoConfirm bool
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	app := cfg.App
	logOpts := cfg.Log
	if logOpts.File == "" {
		logOpts.File = app.Apply.LogFile
	}
	log, err := logger.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	c := &Container{
		Config: app,
		Logger: log,
		Ledger: service.NewAnswerLedger(),
		UI:     userinteraction.NewConsoleUserInteraction(cfg.AutoConfirm),
	}
	c.LedgerStore = ledger.NewFileStore(app.Apply.LedgerFile, log)

	if app.Apply.HistoryDB != "" {
		store, err := history.Open(app.Apply.HistoryDB)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		c.History = store
	}

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = app.Automation.Headless
	browserCfg.UserDataDir = app.Automation.UserDataDir
	browserCfg.Timeout = app.Automation.ActionTimeout
	browser, err := rod.NewBrowserAdapter(ctx, browserCfg)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}
	c.Surface = browser

	actionPacer := pacer.New(pacer.Config{
		MinDelay:         app.Automation.MinDelay,
		MaxDelay:         app.Automation.MaxDelay,
		ActionsPerSecond: app.Automation.ActionsPerSecond,
	})
	jobPacer := pacer.New(pacer.Config{
		MinDelay: app.Automation.JobMinDelay,
		MaxDelay: app.Automation.JobMaxDelay,
	})

	steps, err := NewStepProcessor(app, c.Ledger, actionPacer, log)
	if err != nil {
		c.Close()
		return nil, err
	}

	var capture output.ArtifactPort
	if app.Apply.ArtifactsDir != "" {
		capture = artifacts.NewRecorder(app.Apply.ArtifactsDir, formRootClass, log)
	}

	c.Session = session.New(
		browser,
		steps,
		navigation.New(navigation.DefaultControls(), log),
		actionPacer,
		capture,
		log,
		SessionConfig(app),
	)

	c.Batch = batch.New(
		c.Session,
		c.Ledger,
		c.LedgerStore,
		c.History,
		jobPacer,
		c.UI,
		log,
		batch.Options{
			Limit:       app.Apply.MaxJobs,
			SkipApplied: app.Apply.SkipApplied,
		},
	)

	return c, nil
}

// NewStepProcessor builds the per-screen form filler from app settings.
func NewStepProcessor(app *config.Config, ledger output.LedgerPort, p output.PacerPort, log output.LoggerPort) (*step.Processor, error) {
	mode, err := resolver.ParseMatchMode(app.Automation.ChoiceMatch)
	if err != nil {
		return nil, err
	}
	res := resolver.New(nil, resolver.Options{MatchMode: mode}, log)
	return step.New(res, app.Policy(), ledger, app.Contact, p, log), nil
}

func SessionConfig(app *config.Config) session.Config {
	cfg := session.DefaultConfig()
	if app.Automation.PageReadyTimeout > 0 {
		cfg.PageReadyTimeout = app.Automation.PageReadyTimeout
	}
	if app.Automation.FormTimeout > 0 {
		cfg.FormTimeout = app.Automation.FormTimeout
	}
	if app.Automation.MaxSteps > 0 {
		cfg.MaxSteps = app.Automation.MaxSteps
	}
	return cfg
}

func (c *Container) Close() {
	if c.Surface != nil {
		c.Surface.Close()
	}
	if c.History != nil {
		if err := c.History.Close(); err != nil {
			c.Logger.Warn("Failed to close history", "error", err)
		}
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}
