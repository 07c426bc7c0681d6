package artifacts

import (
	"strings"

	"golang.org/x/net/html"
)

type CleanConfig struct {
	TagsToRemove  []string
	AttrsToRemove []string
	// AttrPrefixesToRemove drops every attribute starting with one of them.
	AttrPrefixesToRemove []string
	MaxOutputSize        int
}

// DefaultCleanConfig keeps the attributes the field resolver relies on
// (id, name, type, for, aria-label, placeholder, role) and drops the rest of
// the noise.
var DefaultCleanConfig = CleanConfig{
	TagsToRemove: []string{
		"script", "style", "noscript", "svg", "iframe", "link", "meta", "img",
	},
	AttrsToRemove: []string{
		"style", "srcset", "sizes", "loading", "decoding", "fetchpriority", "tabindex",
	},
	AttrPrefixesToRemove: []string{"on", "data-ember", "data-view"},
	MaxOutputSize:        500_000,
}

// CleanHTML strips scripts, comments and noisy attributes from rawHTML. When
// rootClass names an element class that exists, only that subtree is kept.
// Unparseable input is returned unchanged.
func CleanHTML(rawHTML, rootClass string, cfg *CleanConfig) string {
	if cfg == nil {
		cfg = &DefaultCleanConfig
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}

	root := findNode(doc, func(n *html.Node) bool { return n.Data == "body" })
	if rootClass != "" {
		if r := findNode(doc, func(n *html.Node) bool { return hasClass(n, rootClass) }); r != nil {
			root = r
		}
	}
	if root == nil {
		root = doc
	}

	cleanNode(root, cfg)

	return truncateHTML(renderNode(root), cfg.MaxOutputSize)
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func cleanNode(n *html.Node, cfg *CleanConfig) {
	if n.Type == html.CommentNode {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		return
	}
	if n.Type == html.ElementNode {
		if isOneOf(n.Data, cfg.TagsToRemove...) {
			if n.Parent != nil {
				n.Parent.RemoveChild(n)
			}
			return
		}
		n.Attr = filterAttributes(n.Attr, cfg)
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		cleanNode(c, cfg)
		c = next
	}
}

func filterAttributes(attrs []html.Attribute, cfg *CleanConfig) []html.Attribute {
	var kept []html.Attribute
	for _, attr := range attrs {
		if shouldRemoveAttr(attr.Key, cfg) {
			continue
		}
		kept = append(kept, attr)
	}
	return kept
}

func shouldRemoveAttr(key string, cfg *CleanConfig) bool {
	if isOneOf(key, cfg.AttrsToRemove...) {
		return true
	}
	for _, p := range cfg.AttrPrefixesToRemove {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

func renderNode(n *html.Node) string {
	var sb strings.Builder
	_ = html.Render(&sb, n)
	return sb.String()
}

func truncateHTML(htmlStr string, maxSize int) string {
	if maxSize > 0 && len(htmlStr) > maxSize {
		return htmlStr[:maxSize] + "\n<!-- truncated -->"
	}
	return htmlStr
}

func isOneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
