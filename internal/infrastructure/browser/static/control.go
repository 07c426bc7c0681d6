package static

import (
	"context"
	"fmt"
	"strings"

	"easyapply/internal/application/port/output"
	"easyapply/internal/domain/entity"

	"github.com/PuerkitoBio/goquery"
)

var _ output.ControlPort = (*control)(nil)

type control struct {
	surface *Surface
	sel     *goquery.Selection
	gen     int
}

// lock acquires the surface and rejects handles from a replaced document.
func (c *control) lock(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.surface.mu.Lock()
	if c.gen != c.surface.gen {
		c.surface.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", entity.ErrStaleElement, describe(c.sel))
	}
	return c.surface.mu.Unlock, nil
}

func (c *control) Find(ctx context.Context, sel entity.Selector) (output.ControlPort, error) {
	all, err := c.FindAll(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrElementNotFound, sel)
	}
	return all[0], nil
}

func (c *control) FindAll(ctx context.Context, sel entity.Selector) ([]output.ControlPort, error) {
	unlock, err := c.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return c.surface.wrap(match(c.sel, sel)), nil
}

func (c *control) Visible(ctx context.Context) (bool, error) {
	unlock, err := c.lock(ctx)
	if err != nil {
		return false, err
	}
	defer unlock()
	return !hidden(c.sel), nil
}

func (c *control) Fill(ctx context.Context, text string) error {
	unlock, err := c.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if disabled(c.sel) {
		return fmt.Errorf("%w: %s is disabled", entity.ErrInteraction, describe(c.sel))
	}
	switch goquery.NodeName(c.sel) {
	case "input":
		c.sel.SetAttr("value", text)
	case "textarea":
		c.sel.SetText(text)
	default:
		return fmt.Errorf("%w: %s is not fillable", entity.ErrInteraction, describe(c.sel))
	}
	c.surface.record("fill %s=%s", describe(c.sel), text)
	return nil
}

func (c *control) Click(ctx context.Context) error {
	unlock, err := c.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if disabled(c.sel) {
		return fmt.Errorf("%w: %s is disabled", entity.ErrInteraction, describe(c.sel))
	}
	c.surface.record("click %s", describe(c.sel))

	target := c.sel
	if goquery.NodeName(c.sel) == "label" {
		if id, ok := c.sel.Attr("for"); ok && id != "" {
			if t := c.surface.doc.Find(`[id="` + cssEscape(id) + `"]`); t.Length() > 0 {
				target = t.First()
			}
		} else if t := c.sel.Find("input").First(); t.Length() > 0 {
			target = t
		}
	}
	activate(c.surface.doc, target)

	if next, ok := destination(c.sel); ok {
		if _, known := c.surface.pages[next]; known {
			return c.surface.load(next)
		}
	}
	return nil
}

func (c *control) SelectOption(ctx context.Context, value string) error {
	unlock, err := c.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if goquery.NodeName(c.sel) != "select" {
		return fmt.Errorf("%w: %s is not a select", entity.ErrInteraction, describe(c.sel))
	}
	options := c.sel.Find("option")
	chosen := -1
	options.EachWithBreak(func(i int, opt *goquery.Selection) bool {
		if optionValue(opt) == value {
			chosen = i
			return false
		}
		return true
	})
	if chosen < 0 {
		return fmt.Errorf("%w: %s has no option %q", entity.ErrInteraction, describe(c.sel), value)
	}
	options.RemoveAttr("selected")
	options.Eq(chosen).SetAttr("selected", "selected")
	c.surface.record("select %s=%s", describe(c.sel), value)
	return nil
}

func (c *control) SetFiles(ctx context.Context, paths ...string) error {
	unlock, err := c.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if t, _ := c.sel.Attr("type"); goquery.NodeName(c.sel) != "input" || t != "file" {
		return fmt.Errorf("%w: %s is not a file input", entity.ErrInteraction, describe(c.sel))
	}
	c.sel.SetAttr("data-files", strings.Join(paths, ","))
	c.surface.record("files %s=%s", describe(c.sel), strings.Join(paths, ","))
	return nil
}

func (c *control) Attribute(ctx context.Context, name string) (string, bool, error) {
	unlock, err := c.lock(ctx)
	if err != nil {
		return "", false, err
	}
	defer unlock()
	v, ok := c.sel.Attr(name)
	return v, ok, nil
}

func (c *control) Text(ctx context.Context) (string, error) {
	unlock, err := c.lock(ctx)
	if err != nil {
		return "", err
	}
	defer unlock()
	return strings.TrimSpace(c.sel.Text()), nil
}

func (c *control) ClosestText(ctx context.Context, css string) (string, bool, error) {
	unlock, err := c.lock(ctx)
	if err != nil {
		return "", false, err
	}
	defer unlock()
	found := c.sel.Closest(css)
	if found.Length() == 0 {
		return "", false, nil
	}
	return strings.TrimSpace(found.First().Text()), true, nil
}

// activate applies the default action of a click to radios and checkboxes.
func activate(doc *goquery.Document, el *goquery.Selection) {
	if goquery.NodeName(el) != "input" {
		return
	}
	switch t, _ := el.Attr("type"); t {
	case "radio":
		if name, ok := el.Attr("name"); ok && name != "" {
			doc.Find(`input[type="radio"][name="` + cssEscape(name) + `"]`).RemoveAttr("checked")
		}
		el.SetAttr("checked", "checked")
	case "checkbox":
		if _, on := el.Attr("checked"); on {
			el.RemoveAttr("checked")
		} else {
			el.SetAttr("checked", "checked")
		}
	}
}

func destination(el *goquery.Selection) (string, bool) {
	switch goquery.NodeName(el) {
	case "a":
		return el.Attr("href")
	case "button", "input":
		return el.Attr("formaction")
	}
	return "", false
}

func optionValue(opt *goquery.Selection) string {
	if v, ok := opt.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(opt.Text())
}

func hidden(sel *goquery.Selection) bool {
	if t, _ := sel.Attr("type"); t == "hidden" {
		return true
	}
	for _, node := range append([]*goquery.Selection{sel}, ancestors(sel)...) {
		if _, ok := node.Attr("hidden"); ok {
			return true
		}
		style, _ := node.Attr("style")
		style = strings.ReplaceAll(strings.ToLower(style), " ", "")
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			return true
		}
	}
	return false
}

func ancestors(sel *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	sel.Parents().Each(func(_ int, p *goquery.Selection) {
		out = append(out, p)
	})
	return out
}

func disabled(sel *goquery.Selection) bool {
	_, ok := sel.Attr("disabled")
	return ok
}

func describe(sel *goquery.Selection) string {
	name := goquery.NodeName(sel)
	if id, ok := sel.Attr("id"); ok && id != "" {
		return name + "#" + id
	}
	if n, ok := sel.Attr("name"); ok && n != "" {
		return name + "[name=" + n + "]"
	}
	return name
}

func cssEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return r.Replace(s)
}
