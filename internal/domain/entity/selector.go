package entity

// Selector addresses controls by CSS and, optionally, by the rendered text
// they contain (case-insensitive).
type Selector struct {
	CSS  string
	Text string
}

func CSS(css string) Selector {
	return Selector{CSS: css}
}

func TextCSS(css, text string) Selector {
	return Selector{CSS: css, Text: text}
}

func (s Selector) String() string {
	if s.Text == "" {
		return s.CSS
	}
	return s.CSS + ` with text "` + s.Text + `"`
}
