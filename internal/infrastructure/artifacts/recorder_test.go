package artifacts

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"easyapply/internal/domain/entity"
	"easyapply/internal/infrastructure/browser/static"
	"easyapply/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Capture(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")
	surface, err := static.FromHTML("https://www.linkedin.com/jobs/view/123/", `<html><body>
		<header>noise</header>
		<div class="jobs-easy-apply-modal"><label for="q">Salary?</label><input id="q" /></div>
	</body></html>`)
	require.NoError(t, err)

	r := NewRecorder(dir, "jobs-easy-apply-modal", logger.NewNop())
	r.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }

	job := entity.Job{Title: "Go Engineer", Company: "Acme", Link: "https://www.linkedin.com/jobs/view/123/"}
	require.NoError(t, r.Capture(context.Background(), surface, job, "no way forward"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "static surface has no screenshot")
	assert.Equal(t, "2024-05-01_10-00-00_123.html", entries[0].Name())

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Go Engineer at Acme")
	assert.Contains(t, string(data), "no way forward")
	assert.Contains(t, string(data), "Salary?")
	assert.NotContains(t, string(data), "noise")
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "https___x_y", sanitize("https://x/y"))
	assert.Equal(t, "job", sanitize(""))
	assert.Len(t, sanitize(string(make([]byte, 100))), 60)
}
