package step

import (
	"fmt"

	"easyapply/internal/domain/entity"
)

// guard runs fn and turns a panic into an interaction error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", entity.ErrInteraction, r)
		}
	}()
	return fn()
}
