// Package static implements the browsing surface over saved HTML documents.
// Pages are keyed by URL; clicking an anchor href or a button formaction
// that names a known page loads it, which invalidates earlier handles.
package static

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"easyapply/internal/application/port/output"
	"easyapply/internal/domain/entity"

	"github.com/PuerkitoBio/goquery"
)

var _ output.SurfacePort = (*Surface)(nil)

type Surface struct {
	mu      sync.Mutex
	pages   map[string]string
	doc     *goquery.Document
	url     string
	gen     int
	actions []string
}

// NewSurface returns a surface serving pages. Nothing is loaded until Navigate.
func NewSurface(pages map[string]string) *Surface {
	copied := make(map[string]string, len(pages))
	for k, v := range pages {
		copied[k] = v
	}
	return &Surface{pages: copied}
}

// FromHTML returns a surface with html already loaded at url.
func FromHTML(url, html string) (*Surface, error) {
	s := NewSurface(map[string]string{url: html})
	if err := s.Navigate(context.Background(), url); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Surface) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(url)
}

func (s *Surface) load(url string) error {
	html, ok := s.pages[url]
	if !ok {
		return fmt.Errorf("%w: unknown page %q", entity.ErrNavigation, url)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("%w: parse %q: %v", entity.ErrNavigation, url, err)
	}
	s.doc = doc
	s.url = url
	s.gen++
	s.actions = append(s.actions, "navigate "+url)
	return nil
}

func (s *Surface) WaitReady(ctx context.Context, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("%w: no page loaded", entity.ErrNavigation)
	}
	return nil
}

func (s *Surface) FindOne(ctx context.Context, sel entity.Selector) (output.ControlPort, error) {
	all, err := s.FindAll(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrElementNotFound, sel)
	}
	return all[0], nil
}

func (s *Surface) FindAll(ctx context.Context, sel entity.Selector) ([]output.ControlPort, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, fmt.Errorf("%w: no page loaded", entity.ErrNavigation)
	}
	return s.wrap(match(s.doc.Selection, sel)), nil
}

// WaitFor does not wait: a static document never changes on its own.
func (s *Surface) WaitFor(ctx context.Context, sel entity.Selector, timeout time.Duration) (output.ControlPort, error) {
	c, err := s.FindOne(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("%w: waiting %s for %s", entity.ErrTimeout, timeout, sel)
	}
	return c, nil
}

func (s *Surface) Snapshot(ctx context.Context) (*entity.PageSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, fmt.Errorf("%w: no page loaded", entity.ErrNavigation)
	}
	html, err := s.doc.Html()
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return &entity.PageSnapshot{
		URL:   s.url,
		Title: strings.TrimSpace(s.doc.Find("title").First().Text()),
		HTML:  html,
	}, nil
}

func (s *Surface) Screenshot(context.Context) (*entity.Screenshot, error) {
	return nil, fmt.Errorf("screenshot: %w", entity.ErrUnsupported)
}

func (s *Surface) CurrentURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

func (s *Surface) Close() {}

// Actions returns the interactions performed so far, oldest first.
func (s *Surface) Actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.actions...)
}

func (s *Surface) record(format string, args ...any) {
	s.actions = append(s.actions, fmt.Sprintf(format, args...))
}

func (s *Surface) wrap(sels []*goquery.Selection) []output.ControlPort {
	out := make([]output.ControlPort, 0, len(sels))
	for _, sel := range sels {
		out = append(out, &control{surface: s, sel: sel, gen: s.gen})
	}
	return out
}

func match(root *goquery.Selection, sel entity.Selector) []*goquery.Selection {
	var out []*goquery.Selection
	needle := strings.ToLower(strings.TrimSpace(sel.Text))
	root.Find(sel.CSS).Each(func(_ int, el *goquery.Selection) {
		if needle != "" && !strings.Contains(strings.ToLower(el.Text()), needle) {
			return
		}
		out = append(out, el)
	})
	return out
}
