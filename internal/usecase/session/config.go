package session

import (
	"time"

	"easyapply/internal/domain/entity"
)

type Config struct {
	// EntrySelectors locate the control opening the application form; the
	// first one is waited for up to EntryTimeout.
	EntrySelectors   []entity.Selector
	ModalSelector    entity.Selector
	DismissSelectors []entity.Selector

	PageReadyTimeout time.Duration
	EntryTimeout     time.Duration
	FormTimeout      time.Duration

	MaxSteps int
}

func DefaultConfig() Config {
	return Config{
		EntrySelectors: []entity.Selector{
			entity.CSS(".jobs-apply-button--top-card #jobs-apply-button-id"),
			entity.CSS("button.jobs-apply-button"),
			entity.TextCSS("button", "Easy Apply"),
		},
		ModalSelector: entity.CSS("div.jobs-easy-apply-modal"),
		DismissSelectors: []entity.Selector{
			entity.CSS(`button[aria-label="Dismiss"]`),
			entity.TextCSS("button", "Done"),
		},
		PageReadyTimeout: 45 * time.Second,
		EntryTimeout:     5 * time.Second,
		FormTimeout:      7 * time.Second,
		MaxSteps:         10,
	}
}
