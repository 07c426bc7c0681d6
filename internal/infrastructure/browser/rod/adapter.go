package rod

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"regexp"
	"strings"
	"time"

	"easyapply/internal/application/port/output"
	"easyapply/internal/domain/entity"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.SurfacePort = (*BrowserAdapter)(nil)

const (
	defaultSlowMotion = 0
	defaultTimeout    = 10 * time.Second
	idleTimeout       = 2 * time.Second
	maxScreenshotW    = 1024
)

type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
}

type BrowserConfig struct {
	Headless bool
	// UserDataDir keeps the browser profile, and with it the login session,
	// between runs. Empty means a throwaway profile.
	UserDataDir string
	SlowMotion  time.Duration
	Timeout     time.Duration
	NoSandbox   bool
	DevTools    bool
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:    false,
		UserDataDir: "user_data",
		SlowMotion:  defaultSlowMotion,
		Timeout:     defaultTimeout,
		NoSandbox:   false,
		DevTools:    false,
	}
}

func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig) (*BrowserAdapter, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	l := launcher.New().
		Headless(cfg.Headless).
		Devtools(cfg.DevTools).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain").
		Set("disable-blink-features", "AutomationControlled")
	if cfg.UserDataDir != "" {
		l = l.UserDataDir(cfg.UserDataDir)
	}

	url, err := l.Context(ctx).Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(url).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.Timeout,
	}, nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, url string) error {
	if err := b.page.Context(ctx).Timeout(b.timeout).Navigate(url); err != nil {
		return fmt.Errorf("%w: %s: %v", entity.ErrNavigation, url, classify(ctx, err))
	}
	return nil
}

func (b *BrowserAdapter) WaitReady(ctx context.Context, timeout time.Duration) error {
	p := b.page.Context(ctx).Timeout(timeout)
	if err := p.WaitLoad(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: page load after %s", entity.ErrTimeout, timeout)
	}
	_ = b.page.Context(ctx).WaitIdle(idleTimeout)
	return nil
}

func (b *BrowserAdapter) FindOne(ctx context.Context, sel entity.Selector) (output.ControlPort, error) {
	all, err := b.FindAll(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrElementNotFound, sel)
	}
	return all[0], nil
}

func (b *BrowserAdapter) FindAll(ctx context.Context, sel entity.Selector) ([]output.ControlPort, error) {
	els, err := b.page.Context(ctx).Timeout(b.timeout).Elements(sel.CSS)
	if err != nil {
		return nil, classify(ctx, err)
	}
	return b.wrap(ctx, els, sel.Text), nil
}

func (b *BrowserAdapter) WaitFor(ctx context.Context, sel entity.Selector, timeout time.Duration) (output.ControlPort, error) {
	if timeout <= 0 {
		return b.FindOne(ctx, sel)
	}
	p := b.page.Context(ctx).Timeout(timeout)

	var (
		el  *rod.Element
		err error
	)
	if sel.Text == "" {
		el, err = p.Element(sel.CSS)
	} else {
		el, err = p.ElementR(sel.CSS, textPattern(sel.Text))
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: waiting %s for %s", entity.ErrTimeout, timeout, sel)
	}
	return &elementControl{el: el, timeout: b.timeout}, nil
}

func (b *BrowserAdapter) Snapshot(ctx context.Context) (*entity.PageSnapshot, error) {
	p := b.page.Context(ctx).Timeout(b.timeout)
	info, err := p.Info()
	if err != nil {
		return nil, fmt.Errorf("page info: %w", classify(ctx, err))
	}
	html, err := p.HTML()
	if err != nil {
		return nil, fmt.Errorf("page html: %w", classify(ctx, err))
	}
	return &entity.PageSnapshot{URL: info.URL, Title: info.Title, HTML: html}, nil
}

func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	imgBytes, err := b.page.Context(ctx).Timeout(b.timeout).Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", classify(ctx, err))
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	if img.Bounds().Dx() > maxScreenshotW {
		img = imaging.Resize(img, maxScreenshotW, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

func (b *BrowserAdapter) CurrentURL() string {
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (b *BrowserAdapter) Close() {
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		// A persistent profile must survive the run.
		if b.launcher.Get("user-data-dir") == "" {
			b.launcher.Cleanup()
		}
	}
}

func (b *BrowserAdapter) wrap(ctx context.Context, els rod.Elements, text string) []output.ControlPort {
	out := make([]output.ControlPort, 0, len(els))
	for _, el := range els {
		if !textMatches(ctx, el, text) {
			continue
		}
		out = append(out, &elementControl{el: el, timeout: b.timeout})
	}
	return out
}

func textMatches(ctx context.Context, el *rod.Element, text string) bool {
	if text == "" {
		return true
	}
	got, err := el.Context(ctx).Text()
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(got), strings.ToLower(strings.TrimSpace(text)))
}

// textPattern renders a case-insensitive JS regex literal for ElementR.
func textPattern(text string) string {
	quoted := regexp.QuoteMeta(strings.TrimSpace(text))
	return "/" + strings.ReplaceAll(quoted, "/", `\/`) + "/i"
}

// classify maps rod failures onto the domain errors.
func classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", entity.ErrTimeout, err)
	}
	var notFound *rod.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", entity.ErrStaleElement, err)
	}
	msg := err.Error()
	if strings.Contains(msg, "Cannot find context") || strings.Contains(msg, "detached") || strings.Contains(msg, "Could not find node") {
		return fmt.Errorf("%w: %v", entity.ErrStaleElement, err)
	}
	return fmt.Errorf("%w: %v", entity.ErrInteraction, err)
}
