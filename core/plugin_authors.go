package core

import (
	"context"
	"sort"
	"strconv"

	"github.com/huangsam/visulog/internal/contract"
	"github.com/huangsam/visulog/schema"
)

// authorsPlugin counts commits per author across the repository history.
type authorsPlugin struct {
	cfg    *schema.Configuration
	client contract.GitClient
	result schema.Result
}

var _ Plugin = &authorsPlugin{} // Compile-time check

func newAuthorsPlugin(cfg *schema.Configuration, client contract.GitClient) Plugin {
	return &authorsPlugin{cfg: cfg, client: client}
}

// Name implements the Plugin interface.
func (p *authorsPlugin) Name() string { return "authors" }

// Run implements the Plugin interface. Repeated calls after a completed
// run are no-ops.
func (p *authorsPlugin) Run(ctx context.Context) error {
	if p.result != nil {
		return nil
	}

	out, err := p.client.GetActivityLog(ctx, p.cfg.RepoPath())
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, c := range ParseActivityLog(out) {
		counts[c.Author]++
	}

	rows := make([][]string, 0, len(counts))
	for author, n := range counts {
		rows = append(rows, []string{author, strconv.Itoa(n)})
	}
	sort.Slice(rows, func(i, j int) bool {
		ni, _ := strconv.Atoi(rows[i][1])
		nj, _ := strconv.Atoi(rows[j][1])
		if ni != nj {
			return ni > nj
		}
		return rows[i][0] < rows[j][0]
	})

	p.result = &tableResult{
		class:   "authors",
		title:   "Commits per author",
		headers: []string{"Author", "Commits"},
		rows:    rows,
	}
	return nil
}

// Result implements the Plugin interface.
func (p *authorsPlugin) Result() schema.Result { return p.result }
