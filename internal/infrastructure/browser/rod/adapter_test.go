package rod

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"easyapply/internal/domain/entity"

	"github.com/go-rod/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Browser tests need a local Chromium and are opt-in.
func requireBrowser(t *testing.T) {
	t.Helper()
	if os.Getenv("EASYAPPLY_BROWSER_TESTS") != "1" {
		t.Skip("set EASYAPPLY_BROWSER_TESTS=1 to run browser tests")
	}
}

func newTestAdapter(t *testing.T) *BrowserAdapter {
	t.Helper()
	requireBrowser(t)

	cfg := DefaultConfig()
	cfg.Headless = true
	cfg.UserDataDir = ""
	cfg.Timeout = 5 * time.Second

	adapter, err := NewBrowserAdapter(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(adapter.Close)
	return adapter
}

func serve(t *testing.T, html string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Headless)
	assert.Equal(t, "user_data", cfg.UserDataDir)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
	assert.False(t, cfg.NoSandbox)
	assert.False(t, cfg.DevTools)
}

func TestTextPattern(t *testing.T) {
	assert.Equal(t, "/Submit application/i", textPattern(" Submit application "))
	assert.Equal(t, `/a\/b\?/i`, textPattern("a/b?"))
}

func TestClassify(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, classify(ctx, nil))
	assert.ErrorIs(t, classify(ctx, context.DeadlineExceeded), entity.ErrTimeout)
	assert.ErrorIs(t, classify(ctx, assert.AnError), entity.ErrInteraction)
	assert.ErrorIs(t, classify(ctx, fmt.Errorf("click: %w", &rod.ObjectNotFoundError{})), entity.ErrStaleElement)
	assert.ErrorIs(t, classify(ctx, errors.New("Cannot find context with specified id")), entity.ErrStaleElement)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, classify(cancelled, assert.AnError), context.Canceled)
}

func TestBrowserAdapter_EasyApplyFlow(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Navigate(ctx, serve(t, JobHTML)))
	require.NoError(t, adapter.WaitReady(ctx, 5*time.Second))

	entry, err := adapter.WaitFor(ctx, entity.CSS(".jobs-apply-button--top-card #jobs-apply-button-id"), time.Second)
	require.NoError(t, err)

	modal, err := adapter.FindOne(ctx, entity.CSS("div.jobs-easy-apply-modal"))
	require.NoError(t, err)
	visible, err := modal.Visible(ctx)
	require.NoError(t, err)
	assert.False(t, visible)

	require.NoError(t, entry.Click(ctx))
	visible, err = modal.Visible(ctx)
	require.NoError(t, err)
	assert.True(t, visible)

	years, err := modal.Find(ctx, entity.CSS("#years"))
	require.NoError(t, err)
	require.NoError(t, years.Fill(ctx, "5"))
	label, ok, err := years.ClosestText(ctx, "div.jobs-easy-apply-modal")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, label, "Years of experience")

	radios, err := modal.FindAll(ctx, entity.CSS(`input[type="radio"]`))
	require.NoError(t, err)
	require.Len(t, radios, 2)
	text, ok, err := radios[0].ClosestText(ctx, "label")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Yes", text)
	require.NoError(t, radios[0].Click(ctx))

	degree, err := modal.Find(ctx, entity.CSS("#degree"))
	require.NoError(t, err)
	require.NoError(t, degree.SelectOption(ctx, "b"))

	next, err := modal.Find(ctx, entity.TextCSS("button", "next"))
	require.NoError(t, err)
	aria, ok, err := next.Attribute(ctx, "aria-label")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Continue to next step", aria)

	_, ok, err = next.Attribute(ctx, "data-missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBrowserAdapter_SetFiles(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	resume := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(resume, []byte("%PDF-1.4"), 0o644))

	require.NoError(t, adapter.Navigate(ctx, serve(t, JobHTML)))
	input, err := adapter.FindOne(ctx, entity.CSS("#resume"))
	require.NoError(t, err)
	assert.NoError(t, input.SetFiles(ctx, resume))
}

func TestBrowserAdapter_WaitFor(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Navigate(ctx, serve(t, DelayedHTML)))

	_, err := adapter.FindOne(ctx, entity.TextCSS("button", "Submit application"))
	assert.ErrorIs(t, err, entity.ErrElementNotFound)

	btn, err := adapter.WaitFor(ctx, entity.TextCSS("button", "submit application"), 3*time.Second)
	require.NoError(t, err)
	text, err := btn.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Submit application", text)

	_, err = adapter.WaitFor(ctx, entity.CSS("#never"), 300*time.Millisecond)
	assert.ErrorIs(t, err, entity.ErrTimeout)
}

func TestBrowserAdapter_SnapshotAndScreenshot(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	url := serve(t, JobHTML)
	require.NoError(t, adapter.Navigate(ctx, url))
	require.NoError(t, adapter.WaitReady(ctx, 5*time.Second))

	snap, err := adapter.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Go Engineer", snap.Title)
	assert.Contains(t, snap.HTML, "jobs-easy-apply-modal")
	assert.Contains(t, adapter.CurrentURL(), "127.0.0.1")

	shot, err := adapter.Screenshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", shot.Format)
	assert.NotEmpty(t, shot.Data)
	assert.LessOrEqual(t, shot.Width, maxScreenshotW)
}
