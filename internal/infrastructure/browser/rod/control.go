package rod

import (
	"context"
	"fmt"
	"strings"
	"time"

	"easyapply/internal/application/port/output"
	"easyapply/internal/domain/entity"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

var _ output.ControlPort = (*elementControl)(nil)

type elementControl struct {
	el      *rod.Element
	timeout time.Duration
}

func (c *elementControl) with(ctx context.Context) *rod.Element {
	return c.el.Context(ctx).Timeout(c.timeout)
}

func (c *elementControl) Find(ctx context.Context, sel entity.Selector) (output.ControlPort, error) {
	all, err := c.FindAll(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrElementNotFound, sel)
	}
	return all[0], nil
}

func (c *elementControl) FindAll(ctx context.Context, sel entity.Selector) ([]output.ControlPort, error) {
	els, err := c.with(ctx).Elements(sel.CSS)
	if err != nil {
		return nil, classify(ctx, err)
	}
	out := make([]output.ControlPort, 0, len(els))
	for _, el := range els {
		if !textMatches(ctx, el, sel.Text) {
			continue
		}
		out = append(out, &elementControl{el: el, timeout: c.timeout})
	}
	return out, nil
}

func (c *elementControl) Visible(ctx context.Context) (bool, error) {
	ok, err := c.with(ctx).Visible()
	if err != nil {
		return false, classify(ctx, err)
	}
	return ok, nil
}

func (c *elementControl) Fill(ctx context.Context, text string) error {
	el := c.with(ctx)
	if err := el.SelectAllText(); err == nil {
		_ = el.Input("")
	}
	if err := el.Input(text); err != nil {
		return fmt.Errorf("input failed: %w", classify(ctx, err))
	}
	return nil
}

// Click scrolls the element into view and clicks it, falling back to a
// script click when the element is covered by an overlay.
func (c *elementControl) Click(ctx context.Context) error {
	el := c.with(ctx)
	_ = el.ScrollIntoView()
	err := el.Click(proto.InputMouseButtonLeft, 1)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if _, jsErr := el.Eval(`() => this.click()`); jsErr != nil {
		return fmt.Errorf("click failed: %w", classify(ctx, err))
	}
	return nil
}

func (c *elementControl) SelectOption(ctx context.Context, value string) error {
	el := c.with(ctx)
	css := `option[value="` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value) + `"]`
	if err := el.Select([]string{css}, true, rod.SelectorTypeCSSSector); err == nil {
		return nil
	}
	if err := el.Select([]string{value}, true, rod.SelectorTypeText); err != nil {
		return fmt.Errorf("select %q: %w", value, classify(ctx, err))
	}
	return nil
}

func (c *elementControl) SetFiles(ctx context.Context, paths ...string) error {
	if err := c.with(ctx).SetFiles(paths); err != nil {
		return fmt.Errorf("set files: %w", classify(ctx, err))
	}
	return nil
}

func (c *elementControl) Attribute(ctx context.Context, name string) (string, bool, error) {
	v, err := c.with(ctx).Attribute(name)
	if err != nil {
		return "", false, classify(ctx, err)
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

func (c *elementControl) Text(ctx context.Context) (string, error) {
	text, err := c.with(ctx).Text()
	if err != nil {
		return "", classify(ctx, err)
	}
	return strings.TrimSpace(text), nil
}

func (c *elementControl) ClosestText(ctx context.Context, css string) (string, bool, error) {
	res, err := c.with(ctx).Eval(`(s) => { const e = this.closest(s); return e ? e.innerText : null }`, css)
	if err != nil {
		return "", false, classify(ctx, err)
	}
	if res.Value.Nil() {
		return "", false, nil
	}
	return strings.TrimSpace(res.Value.Str()), true, nil
}
