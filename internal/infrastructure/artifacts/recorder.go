// Package artifacts stores diagnostics of applications that did not
// complete: a screenshot and the cleaned form markup.
package artifacts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"easyapply/internal/application/port/output"
	"easyapply/internal/domain/entity"
)

var _ output.ArtifactPort = (*Recorder)(nil)

type Recorder struct {
	dir       string
	rootClass string
	now       func() time.Time
	logger    output.LoggerPort
}

// NewRecorder writes artifacts under dir. rootClass narrows the saved markup
// to the form container when present on the page.
func NewRecorder(dir, rootClass string, logger output.LoggerPort) *Recorder {
	return &Recorder{
		dir:       dir,
		rootClass: rootClass,
		now:       time.Now,
		logger:    logger.Named("artifacts"),
	}
}

func (r *Recorder) Capture(ctx context.Context, surface output.SurfacePort, job entity.Job, reason string) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create artifacts dir: %w", err)
	}
	base := filepath.Join(r.dir, fmt.Sprintf("%s_%s", r.now().Format("2006-01-02_15-04-05"), sanitize(job.ID())))

	snap, err := surface.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	page := fmt.Sprintf("<!-- %s | %s | %s -->\n%s", job.String(), snap.URL, reason, CleanHTML(snap.HTML, r.rootClass, nil))
	if err := os.WriteFile(base+".html", []byte(page), 0o644); err != nil {
		return fmt.Errorf("write html: %w", err)
	}

	shot, err := surface.Screenshot(ctx)
	switch {
	case errors.Is(err, entity.ErrUnsupported):
	case err != nil:
		r.logger.Warn("Screenshot failed", "job", job.ID(), "error", err)
	default:
		if err := os.WriteFile(base+"."+shot.Format, shot.Data, 0o644); err != nil {
			return fmt.Errorf("write screenshot: %w", err)
		}
	}

	r.logger.Info("Artifacts saved", "job", job.ID(), "path", base)
	return nil
}

func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, s)
	if s == "" {
		return "job"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
