// Package core runs analyzer plugins and aggregates their results.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/visulog/internal/contract"
	"github.com/huangsam/visulog/schema"
)

// resultCacheVersion is bumped whenever the cached result payload shape
// changes, invalidating older entries.
const resultCacheVersion = 1

// Analyzer executes the plugins requested by a resolved configuration,
// one at a time, and collects their results in request order.
type Analyzer struct {
	cfg    *schema.Configuration
	client contract.GitClient
	mgr    contract.CacheManager
}

// NewAnalyzer creates an analyzer for the given configuration.
func NewAnalyzer(cfg *schema.Configuration, client contract.GitClient, mgr contract.CacheManager) *Analyzer {
	return &Analyzer{cfg: cfg, client: client, mgr: mgr}
}

// ComputeResults runs every requested plugin synchronously, in request
// order, and returns the aggregated result. A plugin that is unknown or
// fails to run is skipped with a warning. Duplicate plugin names run
// once per occurrence.
func (a *Analyzer) ComputeResults(ctx context.Context) (*schema.AnalyzerResult, error) {
	plugins := a.cfg.Plugins()

	runID := a.beginHistoryRun(plugins)

	// A missing repo hash disables caching for this run but does not
	// stop the analysis.
	repoHash := ""
	if hash, err := a.client.GetRepoHash(ctx, a.cfg.RepoPath()); err != nil {
		contract.LogWarn("could not resolve repo hash, caching disabled", err)
	} else {
		repoHash = hash
	}

	aggregated := schema.NewAnalyzerResult()
	for _, name := range plugins {
		factory := LookupPlugin(name)
		if factory == nil {
			contract.LogWarn(fmt.Sprintf("unknown plugin '%s', skipping", name), nil)
			continue
		}

		if cached := a.cachedResult(repoHash, name); cached != nil {
			aggregated.Add(cached)
			continue
		}

		plugin := factory(a.cfg, a.client)
		if err := plugin.Run(ctx); err != nil {
			contract.LogWarn(fmt.Sprintf("plugin '%s' failed, skipping", name), err)
			continue
		}
		result := plugin.Result()
		if result == nil {
			contract.LogWarn(fmt.Sprintf("plugin '%s' produced no result, skipping", name), nil)
			continue
		}
		aggregated.Add(result)
		a.storeResult(repoHash, name, result)
	}

	a.endHistoryRun(runID, aggregated.Len())

	return aggregated, nil
}

// cachedResult replays a previously stored rendering for the plugin, or
// returns nil on any miss.
func (a *Analyzer) cachedResult(repoHash, name string) schema.Result {
	if a.mgr == nil || repoHash == "" {
		return nil
	}
	store := a.mgr.GetResultStore()
	if store == nil {
		return nil
	}
	payload, version, _, err := store.Get(repoHash + ":" + name)
	if err != nil || version != resultCacheVersion {
		return nil
	}
	var replay schema.TextResult
	if err := json.Unmarshal(payload, &replay); err != nil {
		return nil
	}
	return &replay
}

// storeResult persists the plugin's renderings for replay on later runs
// against the same repository state.
func (a *Analyzer) storeResult(repoHash, name string, result schema.Result) {
	if a.mgr == nil || repoHash == "" {
		return
	}
	store := a.mgr.GetResultStore()
	if store == nil {
		return
	}
	payload, err := json.Marshal(&schema.TextResult{
		Text: result.String(),
		Div:  result.HTML(),
	})
	if err != nil {
		return
	}
	if err := store.Set(repoHash+":"+name, payload, resultCacheVersion, time.Now().Unix()); err != nil {
		contract.LogWarn(fmt.Sprintf("could not cache result for plugin '%s'", name), err)
	}
}

// beginHistoryRun records the start of an analysis run. It returns zero
// when history tracking is disabled or the record could not be created.
func (a *Analyzer) beginHistoryRun(plugins []string) int64 {
	if a.mgr == nil {
		return 0
	}
	store := a.mgr.GetHistoryStore()
	if store == nil {
		return 0
	}
	runID, err := store.BeginRun(time.Now(), map[string]any{
		"path":    a.cfg.RepoPath(),
		"plugins": strings.Join(plugins, ","),
	})
	if err != nil {
		contract.LogWarn("could not record run start", err)
		return 0
	}
	return runID
}

// endHistoryRun completes the run record started by beginHistoryRun.
func (a *Analyzer) endHistoryRun(runID int64, pluginCount int) {
	if runID == 0 || a.mgr == nil {
		return
	}
	store := a.mgr.GetHistoryStore()
	if store == nil {
		return
	}
	if err := store.EndRun(runID, time.Now(), pluginCount); err != nil {
		contract.LogWarn("could not record run completion", err)
	}
}
