// Package config loads easyapply.yaml through viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"easyapply/internal/application/port/output"
	"easyapply/internal/domain/entity"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	App       = "easyapply"
	EnvPrefix = "EASYAPPLY"
)

type Config struct {
	Automation Automation `mapstructure:"automation"`
	Apply      Apply      `mapstructure:"apply"`
	// Answers is decoded separately; see decodeAnswers.
	Answers Answers `mapstructure:"-"`
	// Contact comes from the environment, never from the config file.
	Contact entity.Contact `mapstructure:"-"`
}

type Automation struct {
	Headless         bool          `mapstructure:"headless"`
	UserDataDir      string        `mapstructure:"user-data-dir"`
	MinDelay         time.Duration `mapstructure:"min-delay"`
	MaxDelay         time.Duration `mapstructure:"max-delay"`
	JobMinDelay      time.Duration `mapstructure:"job-min-delay"`
	JobMaxDelay      time.Duration `mapstructure:"job-max-delay"`
	ActionsPerSecond float64       `mapstructure:"actions-per-second"`
	ActionTimeout    time.Duration `mapstructure:"action-timeout"`
	PageReadyTimeout time.Duration `mapstructure:"page-ready-timeout"`
	FormTimeout      time.Duration `mapstructure:"form-timeout"`
	MaxSteps         int           `mapstructure:"max-steps"`
	ChoiceMatch      string        `mapstructure:"choice-match"`
}

type Apply struct {
	MaxJobs      int    `mapstructure:"max-jobs"`
	JobsFile     string `mapstructure:"jobs-file"`
	LedgerFile   string `mapstructure:"ledger-file"`
	HistoryDB    string `mapstructure:"history-db"`
	ArtifactsDir string `mapstructure:"artifacts-dir"`
	SkipApplied  bool   `mapstructure:"skip-applied"`
	LogFile      string `mapstructure:"log-file"`
}

type Answers struct {
	Values map[string]string
	// DefaultChoices is nil when unset, selecting entity.DefaultChoices.
	DefaultChoices []string
}

// SetDefaults registers every default so env overrides work without a
// config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("automation.headless", false)
	v.SetDefault("automation.user-data-dir", "user_data")
	v.SetDefault("automation.min-delay", "800ms")
	v.SetDefault("automation.max-delay", "2500ms")
	v.SetDefault("automation.job-min-delay", "5s")
	v.SetDefault("automation.job-max-delay", "15s")
	v.SetDefault("automation.actions-per-second", 2.0)
	v.SetDefault("automation.action-timeout", "10s")
	v.SetDefault("automation.page-ready-timeout", "45s")
	v.SetDefault("automation.form-timeout", "7s")
	v.SetDefault("automation.max-steps", 10)
	v.SetDefault("automation.choice-match", "word")

	v.SetDefault("apply.max-jobs", 10)
	v.SetDefault("apply.jobs-file", "jobs.yaml")
	v.SetDefault("apply.ledger-file", "data/questions_log.json")
	v.SetDefault("apply.history-db", "data/applications.db")
	v.SetDefault("apply.artifacts-dir", "artifacts")
	v.SetDefault("apply.skip-applied", true)
	v.SetDefault("apply.log-file", "")
}

// New returns a viper instance reading file (or easyapply.yaml in the working
// directory) with EASYAPPLY_ environment overrides.
func New(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(App)
		v.SetConfigType("yaml")
	}
	return v
}

// Load reads the config file if present and decodes it. Contact details are
// taken from env.
func Load(v *viper.Viper, env output.EnvPort) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	answers, err := decodeAnswers(v.Get("answers"))
	if err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	cfg.Answers = answers

	if env != nil {
		cfg.Contact = entity.Contact{
			Phone:      env.Get("PHONE"),
			Email:      env.Get("EMAIL"),
			ResumePath: env.Get("RESUME_PATH"),
		}
	}

	return &cfg, nil
}

// decodeAnswers accepts scalar values of any YAML type, so `5` and "5" both
// answer years-of-experience.
func decodeAnswers(raw any) (Answers, error) {
	var out Answers
	if raw == nil {
		return out, nil
	}

	var m map[string]any
	if err := mapstructure.Decode(raw, &m); err != nil {
		return out, err
	}

	if choices, ok := m["default-choices"]; ok {
		delete(m, "default-choices")
		out.DefaultChoices = []string{}
		if err := mapstructure.WeakDecode(choices, &out.DefaultChoices); err != nil {
			return out, fmt.Errorf("default-choices: %w", err)
		}
	}

	for k, v := range m {
		if b, ok := v.(bool); ok {
			m[k] = yesNo(b)
		}
	}
	if err := mapstructure.WeakDecode(m, &out.Values); err != nil {
		return out, err
	}
	return out, nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Policy builds the answer policy from the answers section.
func (c *Config) Policy() entity.AnswerPolicy {
	values := make(map[entity.Category]string, len(c.Answers.Values))
	for k, v := range c.Answers.Values {
		values[entity.Category(strings.ToLower(k))] = strings.TrimSpace(v)
	}
	return entity.NewAnswerPolicy(values, c.Answers.DefaultChoices)
}
