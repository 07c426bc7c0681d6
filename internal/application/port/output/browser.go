package output

import (
	"context"
	"time"

	"easyapply/internal/domain/entity"
)

// SurfacePort is the browsing surface the form engine drives.
type SurfacePort interface {
	Navigate(ctx context.Context, url string) error
	WaitReady(ctx context.Context, timeout time.Duration) error

	// FindOne returns the first match or entity.ErrElementNotFound without waiting.
	FindOne(ctx context.Context, sel entity.Selector) (ControlPort, error)
	FindAll(ctx context.Context, sel entity.Selector) ([]ControlPort, error)
	// WaitFor blocks until sel matches or timeout elapses (entity.ErrTimeout).
	WaitFor(ctx context.Context, sel entity.Selector, timeout time.Duration) (ControlPort, error)

	Snapshot(ctx context.Context) (*entity.PageSnapshot, error)
	Screenshot(ctx context.Context) (*entity.Screenshot, error)

	CurrentURL() string
	Close()
}

// ControlPort is a handle to one element on the surface. Handles may go
// stale when the surface changes; operations then fail with
// entity.ErrStaleElement or another entity.ErrInteraction.
type ControlPort interface {
	Find(ctx context.Context, sel entity.Selector) (ControlPort, error)
	FindAll(ctx context.Context, sel entity.Selector) ([]ControlPort, error)

	Visible(ctx context.Context) (bool, error)
	Fill(ctx context.Context, text string) error
	Click(ctx context.Context) error
	SelectOption(ctx context.Context, value string) error
	SetFiles(ctx context.Context, paths ...string) error

	// Attribute reports the attribute value and whether it is present.
	Attribute(ctx context.Context, name string) (string, bool, error)
	Text(ctx context.Context) (string, error)
	// ClosestText returns the text of the nearest ancestor (or self) matching
	// css, and false if there is none.
	ClosestText(ctx context.Context, css string) (string, bool, error)
}
