package jobs

import (
	"os"
	"path/filepath"
	"testing"

	"easyapply/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	want := []entity.Job{
		{Title: "Go Engineer", Company: "Acme", Link: "https://www.linkedin.com/jobs/view/1/"},
		{Title: "SRE", Company: "Initech", Link: "https://www.linkedin.com/jobs/view/2/"},
	}

	tests := []struct {
		name string
		in   string
		want []entity.Job
	}{
		{
			name: "yaml list",
			in: `
- title: Go Engineer
  company: Acme
  link: https://www.linkedin.com/jobs/view/1/
- title: SRE
  company: Initech
  link: https://www.linkedin.com/jobs/view/2/
`,
			want: want,
		},
		{
			name: "jobs key",
			in: `
jobs:
  - {title: Go Engineer, company: Acme, link: "https://www.linkedin.com/jobs/view/1/"}
  - {title: SRE, company: Initech, link: "https://www.linkedin.com/jobs/view/2/"}
`,
			want: want,
		},
		{
			name: "json",
			in: `[{"title":"Go Engineer","company":"Acme","link":"https://www.linkedin.com/jobs/view/1/"}, {"title":"SRE","company":"Initech","link":"https://www.linkedin.com/jobs/view/2/"}]`,
			want: want,
		},
		{
			name: "drops missing links and duplicates",
			in: `
- {title: Go Engineer, company: Acme, link: "https://www.linkedin.com/jobs/view/1/"}
- {title: Dup, company: Acme, link: "https://www.linkedin.com/jobs/view/1/?trk=x"}
- {title: No link, company: Acme}
- {title: SRE, company: Initech, link: " https://www.linkedin.com/jobs/view/2/ "}
`,
			want: want,
		},
		{
			name: "empty",
			in:   "  \n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("- [unclosed"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- {title: A, company: B, link: x}\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []entity.Job{{Title: "A", Company: "B", Link: "x"}}, got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
