package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"easyapply/internal/domain/entity"
	"easyapply/internal/usecase/resolver"
)

func Validate(cfg *Config) error {
	var errs []string

	a := cfg.Automation
	if a.MinDelay < 0 || a.MaxDelay < a.MinDelay {
		errs = append(errs, "automation.min-delay must be >= 0 and <= automation.max-delay")
	}
	if a.JobMinDelay < 0 || a.JobMaxDelay < a.JobMinDelay {
		errs = append(errs, "automation.job-min-delay must be >= 0 and <= automation.job-max-delay")
	}
	if a.ActionsPerSecond < 0 {
		errs = append(errs, "automation.actions-per-second must be >= 0")
	}
	if a.ActionTimeout <= 0 {
		errs = append(errs, "automation.action-timeout must be positive")
	}
	if a.PageReadyTimeout <= 0 {
		errs = append(errs, "automation.page-ready-timeout must be positive")
	}
	if a.FormTimeout <= 0 {
		errs = append(errs, "automation.form-timeout must be positive")
	}
	if a.MaxSteps <= 0 {
		errs = append(errs, "automation.max-steps must be positive")
	}
	if _, err := resolver.ParseMatchMode(a.ChoiceMatch); err != nil {
		errs = append(errs, "automation.choice-match must be one of word, exact, substring")
	}

	if cfg.Apply.MaxJobs < 0 {
		errs = append(errs, "apply.max-jobs must be >= 0")
	}
	if cfg.Apply.LedgerFile == "" {
		errs = append(errs, "apply.ledger-file is required")
	}

	known := make(map[string]bool, len(entity.Categories))
	for _, c := range entity.Categories {
		known[c.String()] = true
	}
	var unknown []string
	for k := range cfg.Answers.Values {
		if !known[strings.ToLower(k)] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		errs = append(errs, fmt.Sprintf("answers.%s is not a known question category", k))
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}
