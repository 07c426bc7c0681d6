package entity

import (
	"errors"
	"fmt"
)

var (
	ErrElementNotFound    = errors.New("element not found")
	ErrTimeout            = errors.New("timed out")
	ErrNavigationStuck    = errors.New("no submit, review or next control found")
	ErrStepBudgetExceeded = errors.New("step budget exceeded")
	ErrInteraction        = errors.New("interaction failed")
	ErrNavigation         = errors.New("navigation failed")
	ErrNoMatchingOption   = errors.New("no option matches")
	ErrUnsupported        = errors.New("not supported by this surface")
)

// ErrStaleElement is returned for handles that outlived their document.
var ErrStaleElement = fmt.Errorf("%w: stale element", ErrInteraction)
