package core

import (
	"context"
	"sort"
	"strconv"

	"github.com/huangsam/visulog/internal/contract"
	"github.com/huangsam/visulog/schema"
)

// churnPlugin counts lines added and deleted per author across the
// repository history.
type churnPlugin struct {
	cfg    *schema.Configuration
	client contract.GitClient
	result schema.Result
}

var _ Plugin = &churnPlugin{} // Compile-time check

func newChurnPlugin(cfg *schema.Configuration, client contract.GitClient) Plugin {
	return &churnPlugin{cfg: cfg, client: client}
}

// Name implements the Plugin interface.
func (p *churnPlugin) Name() string { return "churn" }

// Run implements the Plugin interface.
func (p *churnPlugin) Run(ctx context.Context) error {
	if p.result != nil {
		return nil
	}

	out, err := p.client.GetActivityLog(ctx, p.cfg.RepoPath())
	if err != nil {
		return err
	}

	type churn struct{ added, deleted int }
	perAuthor := make(map[string]*churn)
	for _, c := range ParseActivityLog(out) {
		entry, ok := perAuthor[c.Author]
		if !ok {
			entry = &churn{}
			perAuthor[c.Author] = entry
		}
		for _, fc := range c.Files {
			entry.added += fc.Added
			entry.deleted += fc.Deleted
		}
	}

	authors := make([]string, 0, len(perAuthor))
	for author := range perAuthor {
		authors = append(authors, author)
	}
	sort.Slice(authors, func(i, j int) bool {
		ci, cj := perAuthor[authors[i]], perAuthor[authors[j]]
		ti, tj := ci.added+ci.deleted, cj.added+cj.deleted
		if ti != tj {
			return ti > tj
		}
		return authors[i] < authors[j]
	})

	rows := make([][]string, 0, len(authors))
	for _, author := range authors {
		entry := perAuthor[author]
		rows = append(rows, []string{
			author,
			strconv.Itoa(entry.added),
			strconv.Itoa(entry.deleted),
		})
	}

	p.result = &tableResult{
		class:   "churn",
		title:   "Churn per author",
		headers: []string{"Author", "Added", "Deleted"},
		rows:    rows,
	}
	return nil
}

// Result implements the Plugin interface.
func (p *churnPlugin) Result() schema.Result { return p.result }
