package core

import (
	"context"
	"strconv"
	"time"

	"github.com/huangsam/visulog/internal/contract"
	"github.com/huangsam/visulog/schema"
)

// activityPlugin counts commits per weekday across the repository history.
type activityPlugin struct {
	cfg    *schema.Configuration
	client contract.GitClient
	result schema.Result
}

var _ Plugin = &activityPlugin{} // Compile-time check

func newActivityPlugin(cfg *schema.Configuration, client contract.GitClient) Plugin {
	return &activityPlugin{cfg: cfg, client: client}
}

// Name implements the Plugin interface.
func (p *activityPlugin) Name() string { return "activity" }

// Run implements the Plugin interface.
func (p *activityPlugin) Run(ctx context.Context) error {
	if p.result != nil {
		return nil
	}

	out, err := p.client.GetActivityLog(ctx, p.cfg.RepoPath())
	if err != nil {
		return err
	}

	var counts [7]int
	for _, c := range ParseActivityLog(out) {
		counts[c.Date.Weekday()]++
	}

	// One row per weekday, Sunday first, including zero-commit days.
	rows := make([][]string, 0, len(counts))
	for day, n := range counts {
		rows = append(rows, []string{time.Weekday(day).String(), strconv.Itoa(n)})
	}

	p.result = &tableResult{
		class:   "activity",
		title:   "Commits per weekday",
		headers: []string{"Weekday", "Commits"},
		rows:    rows,
	}
	return nil
}

// Result implements the Plugin interface.
func (p *activityPlugin) Result() schema.Result { return p.result }
