package entity

// PageSnapshot is the state of the surface captured for diagnostics.
type PageSnapshot struct {
	URL   string
	Title string
	HTML  string
}

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}
