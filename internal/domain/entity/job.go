package entity

import (
	"regexp"
	"strings"
)

var jobIDRe = regexp.MustCompile(`/jobs/view/(\d+)`)

// Job identifies one posting to apply to. It is produced by the discovery
// step and never modified afterwards.
type Job struct {
	Title   string `json:"title" yaml:"title"`
	Company string `json:"company" yaml:"company"`
	Link    string `json:"link" yaml:"link"`
}

// ID returns the numeric posting id embedded in the link, or the link itself.
func (j Job) ID() string {
	if m := jobIDRe.FindStringSubmatch(j.Link); len(m) > 1 {
		return m[1]
	}
	return strings.TrimSpace(j.Link)
}

func (j Job) String() string {
	title := j.Title
	if title == "" {
		title = "Unknown"
	}
	company := j.Company
	if company == "" {
		company = "Unknown"
	}
	return title + " at " + company
}
