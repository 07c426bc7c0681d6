// Package jobs reads the job queue file.
package jobs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"easyapply/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

type queueFile struct {
	Jobs []entity.Job `yaml:"jobs"`
}

// Load reads jobs from a YAML or JSON file holding either a list of jobs or
// a mapping with a jobs key. Entries without a link are dropped and
// duplicates (by job id) keep their first occurrence.
func Load(path string) ([]entity.Job, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read jobs file: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) ([]entity.Job, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, nil
	}

	var list []entity.Job
	if err := yaml.Unmarshal(b, &list); err != nil {
		var typeErr *yaml.TypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("parse jobs file: %w", err)
		}
		var q queueFile
		if err := yaml.Unmarshal(b, &q); err != nil {
			return nil, fmt.Errorf("parse jobs file: %w", err)
		}
		list = q.Jobs
	}

	seen := make(map[string]bool, len(list))
	out := make([]entity.Job, 0, len(list))
	for _, j := range list {
		j.Title = strings.TrimSpace(j.Title)
		j.Company = strings.TrimSpace(j.Company)
		j.Link = strings.TrimSpace(j.Link)
		if j.Link == "" || seen[j.ID()] {
			continue
		}
		seen[j.ID()] = true
		out = append(out, j)
	}
	return out, nil
}
